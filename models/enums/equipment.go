package enums

// CameraType 相机形态，对应原库 chk_camera_type 检查约束。
type CameraType string

const (
	CameraDSLR       CameraType = "DSLR"
	CameraMirrorless CameraType = "Mirrorless"
	CameraCompact    CameraType = "Compact"
	CameraFilm       CameraType = "Film"
	CameraOther      CameraType = "Other"
)

func (t CameraType) IsValid() bool {
	switch t {
	case CameraDSLR, CameraMirrorless, CameraCompact, CameraFilm, CameraOther:
		return true
	}
	return false
}

// LensType 镜头类型，对应原库 chk_lens_type 检查约束。
type LensType string

const (
	LensPrime     LensType = "Prime"
	LensZoom      LensType = "Zoom"
	LensMacro     LensType = "Macro"
	LensWide      LensType = "Wide"
	LensTelephoto LensType = "Telephoto"
	LensOther     LensType = "Other"
)

func (t LensType) IsValid() bool {
	switch t {
	case LensPrime, LensZoom, LensMacro, LensWide, LensTelephoto, LensOther:
		return true
	}
	return false
}

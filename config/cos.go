package config

// COSConfig 腾讯云对象存储配置，用于器材样张上传。
type COSConfig struct {
	SecretID   string `mapstructure:"secretId" json:"secretId" yaml:"secretId"`
	SecretKey  string `mapstructure:"secretKey" json:"secretKey" yaml:"secretKey"`
	BucketName string `mapstructure:"bucketName" json:"bucketName" yaml:"bucketName"`
	AppID      string `mapstructure:"appId" json:"appId" yaml:"appId"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	// BaseURL 可选，配置 CDN 或自定义域名时用于拼接对象的公开访问 URL。
	BaseURL string `mapstructure:"baseUrl" json:"baseUrl" yaml:"baseUrl"`
}

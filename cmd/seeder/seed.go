package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/service"
)

// SeederServices 聚合填充流程用到的全部服务。
type SeederServices struct {
	Auth     service.AuthService
	Brand    service.BrandService
	Mount    service.MountService
	Camera   service.CameraService
	Lens     service.LensService
	Category service.CategoryService
	Tag      service.TagService
	Article  service.ArticleService
	Comment  service.CommentService
	Rating   service.RatingService
}

var cameraTypes = []enums.CameraType{
	enums.CameraMirrorless, enums.CameraDSLR, enums.CameraCompact, enums.CameraFilm,
}

var lensTypes = []enums.LensType{
	enums.LensPrime, enums.LensZoom, enums.LensMacro, enums.LensTelephoto,
}

// Seed 按依赖顺序填充测试数据：品牌和卡口先行，器材与内容随后。
// 全部走服务层，触发与线上一致的唯一性与外键校验。
func Seed(ctx context.Context, svcs *SeederServices, logger *core.ZapLogger, numCameras, numLenses, numArticles int) {
	// --- 1. 卡口 ---
	mountIDs := make([]uint64, 0, 8)
	for i := 0; i < 8; i++ {
		req := &dto.CreateMountRequest{
			Name:        fmt.Sprintf("%s-%s Mount", strings.ToUpper(gofakeit.LetterN(2)), gofakeit.LetterN(1)),
			ReleaseYear: intPtr(gofakeit.Number(1959, 2024)),
		}
		flange := gofakeit.Float64Range(16, 48)
		diameter := gofakeit.Float64Range(38, 65)
		req.FlangeDistance = &flange
		req.Diameter = &diameter

		resp, err := svcs.Mount.CreateMount(ctx, req, nil)
		if err != nil {
			logger.Error("创建卡口失败", zap.Error(err), zap.String("name", req.Name))
			continue
		}
		mountIDs = append(mountIDs, resp.ID)
	}
	logger.Info("卡口填充完成", zap.Int("数量", len(mountIDs)))
	if len(mountIDs) == 0 {
		logger.Error("没有任何卡口创建成功，中止填充")
		return
	}

	// --- 2. 品牌（带卡口关联） ---
	brandIDs := make([]uint64, 0, 6)
	for i := 0; i < 6; i++ {
		linked := pickSome(mountIDs, gofakeit.Number(1, 3))
		req := &dto.CreateBrandRequest{
			Name:        fmt.Sprintf("%s Optics", gofakeit.Company()),
			Country:     gofakeit.Country(),
			FoundedYear: intPtr(gofakeit.Number(1900, 2010)),
			Website:     gofakeit.URL(),
			Description: gofakeit.Sentence(12),
			MountIDs:    linked,
		}
		resp, err := svcs.Brand.CreateBrand(ctx, req, nil)
		if err != nil {
			logger.Error("创建品牌失败", zap.Error(err), zap.String("name", req.Name))
			continue
		}
		brandIDs = append(brandIDs, resp.ID)
	}
	logger.Info("品牌填充完成", zap.Int("数量", len(brandIDs)))
	if len(brandIDs) == 0 {
		logger.Error("没有任何品牌创建成功，中止填充")
		return
	}

	// --- 3. 相机与镜头 (并发) ---
	cameraIDs := seedCameras(ctx, svcs, logger, brandIDs, mountIDs, numCameras)
	lensIDs := seedLenses(ctx, svcs, logger, brandIDs, mountIDs, numLenses)

	// --- 4. 用户 ---
	userIDs := make([]uint64, 0, 10)
	for i := 0; i < 10; i++ {
		req := &dto.RegisterRequest{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 12),
			FullName: gofakeit.Name(),
		}
		resp, err := svcs.Auth.Register(ctx, req)
		if err != nil {
			logger.Error("注册用户失败", zap.Error(err), zap.String("username", req.Username))
			continue
		}
		userIDs = append(userIDs, resp.ID)
	}
	logger.Info("用户填充完成", zap.Int("数量", len(userIDs)))

	// --- 5. 分类与标签 ---
	categoryIDs := make([]uint64, 0, 5)
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("%s %d", gofakeit.HackerNoun(), i)
		req := &dto.CreateCategoryRequest{
			Name:        name,
			Slug:        slugify(name),
			Description: gofakeit.Sentence(8),
		}
		resp, err := svcs.Category.CreateCategory(ctx, req, nil)
		if err != nil {
			logger.Error("创建分类失败", zap.Error(err), zap.String("name", req.Name))
			continue
		}
		categoryIDs = append(categoryIDs, resp.ID)
	}

	tagIDs := make([]uint64, 0, 10)
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("%s-%d", gofakeit.Adjective(), i)
		req := &dto.CreateTagRequest{
			Name: name,
			Slug: slugify(name),
		}
		resp, err := svcs.Tag.CreateTag(ctx, req, nil)
		if err != nil {
			logger.Error("创建标签失败", zap.Error(err), zap.String("name", req.Name))
			continue
		}
		tagIDs = append(tagIDs, resp.ID)
	}
	logger.Info("分类与标签填充完成", zap.Int("分类", len(categoryIDs)), zap.Int("标签", len(tagIDs)))

	// --- 6. 文章 ---
	articleIDs := make([]uint64, 0, numArticles)
	if len(userIDs) > 0 {
		for i := 0; i < numArticles; i++ {
			title := gofakeit.Sentence(gofakeit.Number(5, 10))
			req := &dto.CreateArticleRequest{
				Title:   title,
				Slug:    fmt.Sprintf("%s-%d", slugify(title), i),
				Content: gofakeit.Paragraph(3, 5, 20, "\n\n"),
				Excerpt: gofakeit.Sentence(15),
				Status:  enums.ArticlePublished,
				TagIDs:  pickSome(tagIDs, gofakeit.Number(0, 3)),
			}
			if len(categoryIDs) > 0 {
				req.CategoryID = &categoryIDs[gofakeit.Number(0, len(categoryIDs)-1)]
			}
			authorID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			resp, err := svcs.Article.CreateArticle(ctx, req, authorID)
			if err != nil {
				logger.Error("创建文章失败", zap.Error(err), zap.String("title", req.Title))
				continue
			}
			articleIDs = append(articleIDs, resp.ID)
		}
	}
	logger.Info("文章填充完成", zap.Int("数量", len(articleIDs)))

	// --- 7. 评论与评分 ---
	seedCommentsAndRatings(ctx, svcs, logger, userIDs, articleIDs, cameraIDs, lensIDs)

	logger.Info("测试数据填充完毕 (通过服务层)。")
}

func seedCameras(ctx context.Context, svcs *SeederServices, logger *core.ZapLogger, brandIDs, mountIDs []uint64, n int) []uint64 {
	var mu sync.Mutex
	var wg sync.WaitGroup
	ids := make([]uint64, 0, n)
	semaphore := make(chan struct{}, 10)

	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			mp := gofakeit.Float64Range(12, 102)
			weight := gofakeit.Number(300, 1500)
			req := &dto.CreateCameraRequest{
				Model:        fmt.Sprintf("%s-%d", strings.ToUpper(gofakeit.LetterN(3)), gofakeit.Number(1, 9000)),
				BrandID:      brandIDs[gofakeit.Number(0, len(brandIDs)-1)],
				MountID:      &mountIDs[gofakeit.Number(0, len(mountIDs)-1)],
				ReleaseYear:  intPtr(gofakeit.Number(2000, 2025)),
				Type:         cameraTypes[gofakeit.Number(0, len(cameraTypes)-1)],
				SensorSize:   gofakeit.RandomString([]string{"Full Frame", "APS-C", "Micro 4/3", "Medium Format"}),
				Megapixels:   &mp,
				ISORange:     "100-51200",
				ShutterSpeed: "1/8000-30s",
				WeightGrams:  &weight,
				Description:  gofakeit.Paragraph(1, 3, 15, " "),
			}

			resp, err := svcs.Camera.CreateCamera(ctx, req, nil)
			if err != nil {
				logger.Error(fmt.Sprintf("创建相机 %d/%d 失败", itemIndex+1, n),
					zap.Error(err), zap.String("model", req.Model))
				return
			}
			mu.Lock()
			ids = append(ids, resp.ID)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	logger.Info("相机填充完成", zap.Int("数量", len(ids)))
	return ids
}

func seedLenses(ctx context.Context, svcs *SeederServices, logger *core.ZapLogger, brandIDs, mountIDs []uint64, n int) []uint64 {
	var mu sync.Mutex
	var wg sync.WaitGroup
	ids := make([]uint64, 0, n)
	semaphore := make(chan struct{}, 10)

	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			focal := gofakeit.Number(14, 600)
			filter := gofakeit.Float64Range(49, 95)
			weight := gofakeit.Number(150, 2500)
			req := &dto.CreateLensRequest{
				Model:       fmt.Sprintf("%dmm f/%.1f %s", focal, gofakeit.Float64Range(1.2, 5.6), strings.ToUpper(gofakeit.LetterN(2))),
				BrandID:     brandIDs[gofakeit.Number(0, len(brandIDs)-1)],
				ReleaseYear: intPtr(gofakeit.Number(1990, 2025)),
				FocalLength: fmt.Sprintf("%dmm", focal),
				Aperture:    fmt.Sprintf("f/%.1f", gofakeit.Float64Range(1.2, 5.6)),
				LensType:    lensTypes[gofakeit.Number(0, len(lensTypes)-1)],
				FilterSize:  &filter,
				WeightGrams: &weight,
				Description: gofakeit.Paragraph(1, 3, 15, " "),
				MountIDs:    pickSome(mountIDs, gofakeit.Number(1, 3)),
			}

			resp, err := svcs.Lens.CreateLens(ctx, req, nil)
			if err != nil {
				logger.Error(fmt.Sprintf("创建镜头 %d/%d 失败", itemIndex+1, n),
					zap.Error(err), zap.String("model", req.Model))
				return
			}
			mu.Lock()
			ids = append(ids, resp.ID)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	logger.Info("镜头填充完成", zap.Int("数量", len(ids)))
	return ids
}

func seedCommentsAndRatings(ctx context.Context, svcs *SeederServices, logger *core.ZapLogger, userIDs, articleIDs, cameraIDs, lensIDs []uint64) {
	if len(userIDs) == 0 {
		return
	}

	commentCount := 0
	for _, articleID := range articleIDs {
		for j := 0; j < gofakeit.Number(0, 3); j++ {
			req := &dto.CreateCommentRequest{
				Content:    gofakeit.Sentence(gofakeit.Number(5, 25)),
				TargetType: enums.TargetArticle,
				TargetID:   articleID,
			}
			authorID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			if _, err := svcs.Comment.CreateComment(ctx, req, authorID); err != nil {
				logger.Error("创建评论失败", zap.Error(err), zap.Uint64("article_id", articleID))
				continue
			}
			commentCount++
		}
	}

	// 评分：每个用户对一部分器材各评一次，天然避开同目标重复评分。
	ratingCount := 0
	for _, userID := range userIDs {
		for _, cameraID := range pickSome(cameraIDs, gofakeit.Number(0, 5)) {
			req := &dto.CreateRatingRequest{
				TargetType: enums.TargetCamera,
				TargetID:   cameraID,
				Score:      float64(gofakeit.Number(2, 10)) / 2, // 1.0 ~ 5.0，步进 0.5
				Comment:    gofakeit.Sentence(8),
			}
			if _, err := svcs.Rating.CreateRating(ctx, req, userID); err != nil {
				logger.Error("创建相机评分失败", zap.Error(err), zap.Uint64("camera_id", cameraID))
				continue
			}
			ratingCount++
		}
		for _, lensID := range pickSome(lensIDs, gofakeit.Number(0, 5)) {
			req := &dto.CreateRatingRequest{
				TargetType: enums.TargetLens,
				TargetID:   lensID,
				Score:      float64(gofakeit.Number(2, 10)) / 2,
			}
			if _, err := svcs.Rating.CreateRating(ctx, req, userID); err != nil {
				logger.Error("创建镜头评分失败", zap.Error(err), zap.Uint64("lens_id", lensID))
				continue
			}
			ratingCount++
		}
	}
	logger.Info("评论与评分填充完成", zap.Int("评论", commentCount), zap.Int("评分", ratingCount))
}

// pickSome 随机取 n 个不重复元素。
func pickSome(ids []uint64, n int) []uint64 {
	if n >= len(ids) {
		return append([]uint64(nil), ids...)
	}
	indexes := make([]int, len(ids))
	for i := range indexes {
		indexes[i] = i
	}
	gofakeit.ShuffleInts(indexes)
	picked := make([]uint64, 0, n)
	for _, idx := range indexes[:n] {
		picked = append(picked, ids[idx])
	}
	return picked
}

func intPtr(v int) *int { return &v }

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	return strings.Trim(s, "-")
}

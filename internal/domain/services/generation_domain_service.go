package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/repositories"
)

const (
	// CharacterName は全シーンに登場させる人物の名前です。
	CharacterName = "Hari"

	// 書き換え後プロンプトの語数の目安。超えても警告ログのみ。
	advisoryWordLimit = 50
)

type GenerationDomainService struct {
	textAIService  repositories.TextAIService
	imageAIService repositories.ImageGenerationService
	imageFetcher   repositories.ImageFetcher
}

func NewGenerationDomainService(
	textAIService repositories.TextAIService,
	imageAIService repositories.ImageGenerationService,
	imageFetcher repositories.ImageFetcher,
) *GenerationDomainService {
	return &GenerationDomainService{
		textAIService:  textAIService,
		imageAIService: imageAIService,
		imageFetcher:   imageFetcher,
	}
}

// ProcessGeneration はプロンプト書き換え -> 画像生成 -> 画像取得を順に実行します。
//
// 書き換えに成功していれば、画像生成が失敗した場合でも書き換え後の
// プロンプトを持つ結果をエラーと一緒に返します。
func (s *GenerationDomainService) ProcessGeneration(
	ctx context.Context,
	request *entities.GenerationRequest,
) (*entities.ImageResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	finalPrompt, err := s.rewritePrompt(ctx, request)
	if err != nil {
		return nil, err
	}

	urls, err := s.imageAIService.GenerateImages(ctx, finalPrompt, request.Parameters())
	if err != nil {
		slog.Error("ProcessGeneration", "requestID", request.ID(), "stage", apperrors.StageGenerate, "error", err)
		result := entities.NewImageResult(request.ID(), finalPrompt, nil)
		if apperrors.IsQuotaError(err) {
			return result, apperrors.NewUpstreamServiceError(apperrors.StageGenerate,
				fmt.Errorf("service temporarily unavailable due to high demand: %w", err))
		}
		return result, apperrors.NewUpstreamServiceError(apperrors.StageGenerate, err)
	}

	slog.Info("ProcessGeneration", "requestID", request.ID(), "requested", request.Parameters().NumOutputs(), "returned", len(urls))

	entries := s.fetchAll(ctx, request.ID(), urls)
	result := entities.NewImageResult(request.ID(), finalPrompt, entries)

	slog.Info("ProcessGeneration", "requestID", request.ID(), "hasImages", result.HasImages(),
		"failed", result.FailedCount(), "elapsed", time.Since(request.CreatedAt()))

	return result, nil
}

func (s *GenerationDomainService) rewritePrompt(ctx context.Context, request *entities.GenerationRequest) (string, error) {
	textRequest := entities.NewTextRequest(request.RawPrompt(), request.ID())
	textResult, err := s.textAIService.RewritePrompt(ctx, textRequest)
	if err != nil {
		slog.Error("ProcessGeneration", "requestID", request.ID(), "stage", apperrors.StageRewrite, "error", err)
		if apperrors.IsQuotaError(err) {
			return "", apperrors.NewUpstreamServiceError(apperrors.StageRewrite,
				fmt.Errorf("service temporarily unavailable due to high demand: %w", err))
		}
		return "", apperrors.NewUpstreamServiceError(apperrors.StageRewrite, err)
	}

	// 語数と人物の有無はサービス側の指示に任せており、ここでは検査しない
	if n := textResult.WordCount(); n > advisoryWordLimit {
		slog.Warn("rewritten prompt exceeds word limit", "requestID", request.ID(), "words", n)
	}
	if !textResult.Mentions(CharacterName) {
		slog.Warn("rewritten prompt does not mention character", "requestID", request.ID(), "character", CharacterName)
	}

	return textResult.Text(), nil
}

// fetchAll は URL を 1 件ずつ順番に取得します。失敗はその URL の結果にだけ記録されます。
func (s *GenerationDomainService) fetchAll(ctx context.Context, requestID entities.GenerationRequestID, urls []string) []entities.ImageEntry {
	entries := make([]entities.ImageEntry, 0, len(urls))
	for i, url := range urls {
		img, err := s.imageFetcher.FetchImage(ctx, url)
		if err != nil {
			slog.Warn("image fetch failed", "requestID", requestID, "index", i, "url", url, "error", err)
		}
		entries = append(entries, entities.NewImageEntry(i, url, img, err))
	}
	return entries
}

func (s *GenerationDomainService) validateRequest(request *entities.GenerationRequest) error {
	if request == nil {
		return apperrors.NewUserInputError("request", "request is required")
	}
	if request.Parameters() == nil {
		return apperrors.NewUserInputError("parameters", "parameters are required")
	}

	return nil
}

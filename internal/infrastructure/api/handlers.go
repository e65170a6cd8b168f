package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/usecases"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/model"
)

const maxFormSize = 1 << 20 // 1MB

type GenerationHandler struct {
	generationUseCase *usecases.GenerationUseCase
	parameterService  *services.ParameterService

	// 同時に実行する生成は 1 件だけ
	inFlight *semaphore.Weighted
}

func NewGenerationHandler(
	generationUseCase *usecases.GenerationUseCase,
	parameterService *services.ParameterService,
) *GenerationHandler {
	return &GenerationHandler{
		generationUseCase: generationUseCase,
		parameterService:  parameterService,
		inFlight:          semaphore.NewWeighted(1),
	}
}

func (h *GenerationHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := parseForm(r); err != nil {
		h.sendError(w, "The form could not be read.", http.StatusBadRequest)
		return
	}

	if !h.inFlight.TryAcquire(1) {
		h.sendError(w, "Another generation is still running. Please wait for it to finish.", http.StatusTooManyRequests)
		return
	}
	defer h.inFlight.Release(1)

	input := h.parameterService.ParseFromRequest(r)

	output, err := h.generationUseCase.Execute(r.Context(), *input)
	if err != nil {
		h.handleGenerationError(w, output, err)
		return
	}

	response := h.createResponse(output)

	slog.Info("HandleGenerate", "requestID", output.RequestID, "images", len(response.Images), "failed", response.Failed())

	w.Header().Set("Cache-Control", "no-store, max-age=0")
	h.writeJSON(w, http.StatusOK, response)
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormSize)
	}
	return r.ParseForm()
}

func (h *GenerationHandler) handleGenerationError(w http.ResponseWriter, output *usecases.GenerationOutput, err error) {
	response := &model.GenerateResponse{
		Success: false,
		Images:  []model.ImagePayload{},
	}
	if output != nil {
		response.RequestID = output.RequestID
		response.FinalPrompt = output.FinalPrompt
	}

	var userErr *apperrors.UserInputError
	var upstreamErr *apperrors.UpstreamServiceError
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &userErr):
		slog.Warn("HandleGenerate", "field", userErr.Field, "warning", userErr.Message)
		response.Error = userErr.Message
		status = http.StatusBadRequest
	case apperrors.IsQuotaError(err):
		slog.Error("HandleGenerate", "error", err)
		response.Error = "The service is busy right now. Please wait a moment and try again."
		status = http.StatusTooManyRequests
	case errors.As(err, &upstreamErr):
		slog.Error("HandleGenerate", "stage", upstreamErr.Stage, "error", err)
		if upstreamErr.Stage == apperrors.StageRewrite {
			response.Error = fmt.Sprintf("Prompt rewrite failed: %v", upstreamErr.Err)
		} else {
			response.Error = fmt.Sprintf("Error generating images: %v", upstreamErr.Err)
			response.Message = "No images to display."
		}
		status = http.StatusBadGateway
	default:
		slog.Error("HandleGenerate", "error", err)
		response.Error = fmt.Sprintf("Generation failed: %v", err)
	}

	h.writeJSON(w, status, response)
}

func (h *GenerationHandler) createResponse(output *usecases.GenerationOutput) *model.GenerateResponse {
	response := &model.GenerateResponse{
		Success:     true,
		RequestID:   output.RequestID,
		FinalPrompt: output.FinalPrompt,
		Images:      make([]model.ImagePayload, 0, len(output.Images)),
	}

	for _, img := range output.Images {
		payload := model.ImagePayload{
			ID:    fmt.Sprintf("%s-%d", output.RequestID, img.Index),
			Index: img.Index,
			URL:   img.URL,
		}
		if img.Error != "" || len(img.Data) == 0 {
			payload.Error = img.Error
			if payload.Error == "" {
				payload.Error = "image could not be loaded"
			}
		} else {
			payload.Data = base64.StdEncoding.EncodeToString(img.Data)
			payload.Type = img.Type
			payload.Width = img.Width
			payload.Height = img.Height
		}
		response.Images = append(response.Images, payload)
	}

	switch failed := response.Failed(); {
	case len(response.Images) == 0:
		response.Message = "No images to display."
	case failed > 0:
		response.Message = fmt.Sprintf("%d of %d images could not be loaded.", failed, len(response.Images))
	}

	return response
}

func (h *GenerationHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *GenerationHandler) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *GenerationHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.writeJSON(w, statusCode, &model.GenerateResponse{
		Success: false,
		Error:   message,
		Images:  []model.ImagePayload{},
	})
}

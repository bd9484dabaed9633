package services

import (
	"time"

	"api/internal/emotion"
	apierrors "api/internal/errors"
	"api/internal/handlers"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentEmotionRecords = 30

// systemPrompt instructs the model to answer with nothing but a flat JSON
// object of category scores. Some models wrap it in prose anyway; the
// parser copes with that.
const systemPrompt = "Analyze the emotions in the user's text. Respond with only a JSON object " +
	"with integer scores 0-100 for the keys: happiness, sadness, anger, anxiety, calmness, etc."

type EmotionService struct {
	DB     *gorm.DB
	Config models.EmotionConfiguration
	Client *resty.Client
}

func NewEmotionService(db *gorm.DB, config models.EmotionConfiguration) EmotionService {
	client := resty.New().
		SetBaseURL(config.APIURL).
		SetAuthToken(config.APIKey).
		SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second)

	return EmotionService{DB: db, Config: config, Client: client}
}

func (s EmotionService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.EmotionAnalyzeBody]).Post("/", handlers.CreateHandler(s.Analyze))
	r.Get("/", handlers.GetListHandler(s.GetRecent))
	return r
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s EmotionService) Analyze(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.EmotionAnalyzeBody,
) (models.EmotionAnalyzeResponse, error) {
	request := chatCompletionRequest{
		Model: s.Config.Model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: body.Text},
		},
	}

	var completion chatCompletionResponse
	response, err := s.Client.R().
		SetBody(request).
		SetResult(&completion).
		Post("/chat/completions")
	if err != nil {
		logger.Error("Emotion API request failed", zap.Error(err))
		return models.EmotionAnalyzeResponse{}, apierrors.NewAPIError(502, apierrors.ErrEmotionUpstream)
	}
	if response.IsError() {
		logger.Error("Emotion API returned an error",
			zap.Int("status", response.StatusCode()),
			zap.String("body", response.String()))
		return models.EmotionAnalyzeResponse{}, apierrors.NewAPIError(502, apierrors.ErrEmotionUpstream)
	}
	if len(completion.Choices) == 0 {
		logger.Error("Emotion API returned no choices")
		return models.EmotionAnalyzeResponse{}, apierrors.NewAPIError(502, apierrors.ErrEmotionUpstream)
	}

	scores, err := emotion.Parse(completion.Choices[0].Message.Content)
	if err != nil {
		logger.Error("Failed to parse emotion content", zap.Error(err))
		return models.EmotionAnalyzeResponse{}, apierrors.NewAPIError(400, apierrors.ErrEmotionParseFailed)
	}

	record := emotion.ToRecord(claims.Email, body.Text, scores)
	if err = sql.CreateEmotionRecord(s.DB, &record); err != nil {
		logger.Error("Failed to persist emotion record", zap.Error(err))
		return models.EmotionAnalyzeResponse{}, err
	}

	return models.EmotionAnalyzeResponse{Emotions: scores}, nil
}

func (s EmotionService) GetRecent(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
) ([]models.EmotionRecord, error) {
	records, err := sql.GetEmotionRecordsByUser(s.DB, claims.Email, recentEmotionRecords)
	if err != nil {
		logger.Error("Failed to list emotion records", zap.Error(err))
		return nil, err
	}
	return records, nil
}

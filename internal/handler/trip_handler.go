package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/usecase"
)

// TripHandler は旅行プランAPIのハンドラー
type TripHandler struct {
	tripUseCase usecase.TripUseCase
}

// NewTripHandler は新しいTripHandlerインスタンスを作成
func NewTripHandler(tripUseCase usecase.TripUseCase) *TripHandler {
	return &TripHandler{
		tripUseCase: tripUseCase,
	}
}

// PostGenerateItinerary は旅行プランを生成するエンドポイント
// POST /api/generate-itinerary
func (h *TripHandler) PostGenerateItinerary(c *gin.Context) {
	var req model.VacationRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	result, err := h.tripUseCase.GenerateItinerary(c.Request.Context(), &req)
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}

	// 検証違反ありの場合もHTTPとしては成功。プランは返すが保存はされていない
	if result.Warning != nil {
		c.JSON(http.StatusOK, result.Warning)
		return
	}

	c.JSON(http.StatusOK, result.Response)
}

// PostModifyItinerary は既存プランに修正を適用するエンドポイント
// POST /api/modify-itinerary/:id
func (h *TripHandler) PostModifyItinerary(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "trip_idが指定されていません",
		})
		return
	}

	var req model.ModifyItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.tripUseCase.ModifyItinerary(c.Request.Context(), tripID, req.ModificationRequest)
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTripHistory は旅行履歴一覧を取得するエンドポイント
// GET /api/trip-history
func (h *TripHandler) GetTripHistory(c *gin.Context) {
	summaries, err := h.tripUseCase.GetTripHistory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "旅行履歴の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips": summaries,
		"count": len(summaries),
	})
}

// GetTripDetail は旅行記録の詳細を取得するエンドポイント
// GET /api/trip/:id
func (h *TripHandler) GetTripDetail(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "trip_idが指定されていません",
		})
		return
	}

	detail, err := h.tripUseCase.GetTripDetail(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, model.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "旅行記録が見つかりません",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "旅行記録の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// writeGenerationError はエラー種別ごとにステータスコードを振り分ける
func (h *TripHandler) writeGenerationError(c *gin.Context, err error) {
	var invalidInput *model.InvalidInputError
	var validationFailure *model.ValidationFailureError
	var generationErr *model.GenerationError

	switch {
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "入力が正しくありません",
			"details": invalidInput.Error(),
		})
	case errors.As(err, &validationFailure):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "バリデーションエラー",
			"validation_errors": validationFailure.Violations,
		})
	case errors.Is(err, model.ErrTripNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "旅行記録が見つかりません",
		})
	case errors.Is(err, model.ErrUpstreamTimeout):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "プラン生成がタイムアウトしました",
			"details": err.Error(),
		})
	case errors.As(err, &generationErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "プラン生成に失敗しました",
			"details": generationErr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "内部エラーが発生しました",
			"details": err.Error(),
		})
	}
}

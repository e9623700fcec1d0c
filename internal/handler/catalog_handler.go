package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
	"TabiPlan-App/internal/domain/service"
)

// CatalogHandler は天気・アクティビティの参照APIのハンドラー
type CatalogHandler struct {
	weatherProvider repository.WeatherProvider
	activityCatalog service.ActivityCatalog
}

// NewCatalogHandler は新しいCatalogHandlerインスタンスを作成
func NewCatalogHandler(weatherProvider repository.WeatherProvider, activityCatalog service.ActivityCatalog) *CatalogHandler {
	return &CatalogHandler{
		weatherProvider: weatherProvider,
		activityCatalog: activityCatalog,
	}
}

// GetWeather は指定都市・日付の天気予報を取得するエンドポイント
// GET /api/weather/:city/:date
func (h *CatalogHandler) GetWeather(c *gin.Context) {
	city := c.Param("city")
	date := c.Param("date")

	observation, err := h.weatherProvider.Forecast(c.Request.Context(), date, city)
	if err != nil {
		var invalidInput *model.InvalidInputError
		if errors.As(err, &invalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "入力が正しくありません",
				"details": invalidInput.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "天気予報の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weather":          observation,
		"outdoor_friendly": model.IsOutdoorFriendly(observation.Condition),
	})
}

// GetActivities は候補アクティビティを取得するエンドポイント
// GET /api/activities?id=... または ?date=...&interests=a,b
func (h *CatalogHandler) GetActivities(c *gin.Context) {
	activityID := c.Query("id")
	date := c.Query("date")
	city := c.Query("city")
	interestsParam := c.Query("interests")

	// ID指定は単体取得
	if activityID != "" {
		activity, err := h.activityCatalog.GetActivityByID(c.Request.Context(), activityID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "アクティビティの取得に失敗しました",
				"details": err.Error(),
			})
			return
		}
		if activity == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "アクティビティが見つかりません",
			})
			return
		}
		c.JSON(http.StatusOK, activity)
		return
	}

	if date == "" && interestsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id、dateまたはinterestsのいずれかを指定してください",
		})
		return
	}

	var activities []model.Activity
	var err error
	if interestsParam != "" {
		interests := model.NormalizeInterests(strings.Split(interestsParam, ","))
		activities, err = h.activityCatalog.GetActivitiesByInterests(c.Request.Context(), interests, date)
	} else {
		activities, err = h.activityCatalog.GetActivitiesByDate(c.Request.Context(), date, city)
	}
	if err != nil {
		var invalidInput *model.InvalidInputError
		if errors.As(err, &invalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "入力が正しくありません",
				"details": invalidInput.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "アクティビティの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// GetInterests は利用可能な興味タグ一覧を取得するエンドポイント
// GET /api/interests
func (h *CatalogHandler) GetInterests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"interests": model.GetAllInterests(),
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	domainrepo "TabiPlan-App/internal/domain/repository"
	"TabiPlan-App/internal/domain/service"
	"TabiPlan-App/internal/handler"
	"TabiPlan-App/internal/infrastructure/ai"
	"TabiPlan-App/internal/infrastructure/database"
	"TabiPlan-App/internal/infrastructure/firestore"
	"TabiPlan-App/internal/infrastructure/images"
	"TabiPlan-App/internal/infrastructure/weather"
	"TabiPlan-App/internal/repository"
	"TabiPlan-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: GEMINI_API_KEY")
		fmt.Println("任意の環境変数: OPENWEATHER_API_KEY, UNSPLASH_ACCESS_KEY, TRIP_STORE, FIRESTORE_PROJECT_ID, DATABASE_URL")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	// 旅行記録ストアの選択（memory / firestore / postgres）
	tripRepo, cleanup, err := buildTripRepository(ctx)
	if err != nil {
		log.Fatalf("旅行記録ストア初期化失敗: %v", err)
	}
	defer cleanup()

	// 外部プロバイダー
	weatherProvider := weather.NewOpenWeatherProvider(os.Getenv("OPENWEATHER_API_KEY"))
	imageProvider := images.NewUnsplashImageProvider(os.Getenv("UNSPLASH_ACCESS_KEY"))

	// AIクライアントと生成リポジトリ
	geminiClient := ai.NewGeminiClient(geminiAPIKey)
	planRepo := ai.NewPlanSynthesizer(geminiClient)
	activityGenRepo := ai.NewGeminiActivityRepository(geminiClient)

	// Dependency injection
	activityCatalog := service.NewActivityCatalog(activityGenRepo)
	tripUseCase := usecase.NewTripUseCase(weatherProvider, activityCatalog, planRepo, tripRepo, imageProvider)
	tripHandler := handler.NewTripHandler(tripUseCase)
	catalogHandler := handler.NewCatalogHandler(weatherProvider, activityCatalog)

	// Ginルーターのセットアップ
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "TabiPlan-App"})
	})

	api := r.Group("/api")
	{
		api.POST("/generate-itinerary", tripHandler.PostGenerateItinerary)
		api.POST("/modify-itinerary/:id", tripHandler.PostModifyItinerary)
		api.GET("/trip-history", tripHandler.GetTripHistory)
		api.GET("/trip/:id", tripHandler.GetTripDetail)
		api.GET("/weather/:city/:date", catalogHandler.GetWeather)
		api.GET("/activities", catalogHandler.GetActivities)
		api.GET("/interests", catalogHandler.GetInterests)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 TabiPlan-App server starting on :%s...\n", port)
	log.Fatal(r.Run(":" + port))
}

// buildTripRepository はTRIP_STORE環境変数に応じた旅行記録ストアを構築する
// 未指定の場合はインメモリストアを使用する
func buildTripRepository(ctx context.Context) (domainrepo.TripRepository, func(), error) {
	noop := func() {}

	switch os.Getenv("TRIP_STORE") {
	case "", "memory":
		fmt.Println("💾 インメモリストアを使用します（再起動でデータは消えます）")
		return repository.NewMemoryTripRepository(), noop, nil

	case "firestore":
		projectID := os.Getenv("FIRESTORE_PROJECT_ID")
		if projectID == "" {
			return nil, noop, fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
		}
		firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			return nil, noop, fmt.Errorf("firestore初期化失敗: %w", err)
		}
		cleanup := func() {
			if err := firestoreClient.Close(); err != nil {
				log.Printf("⚠️ Firestore切断に失敗: %v", err)
			}
		}
		return repository.NewFirestoreTripRepository(firestoreClient.GetClient()), cleanup, nil

	case "postgres":
		postgresClient, err := database.NewPostgreSQLClient()
		if err != nil {
			return nil, noop, fmt.Errorf("postgreSQL初期化失敗: %w", err)
		}
		cleanup := func() {
			if err := postgresClient.Close(); err != nil {
				log.Printf("⚠️ PostgreSQL切断に失敗: %v", err)
			}
		}
		tripRepo := repository.NewPostgresTripRepository(postgresClient)
		if pg, ok := tripRepo.(*repository.PostgresTripRepository); ok {
			if err := pg.EnsureSchema(ctx); err != nil {
				cleanup()
				return nil, noop, err
			}
		}
		return tripRepo, cleanup, nil

	default:
		return nil, noop, fmt.Errorf("未対応のTRIP_STORE値です: %s", os.Getenv("TRIP_STORE"))
	}
}

package main

import (
	"log"
	"os"
	"time"

	"marketplace_backend/internal/app/router"
	authadapters "marketplace_backend/internal/feature/auth/adapters"
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	authusecase "marketplace_backend/internal/feature/auth/usecase"
	profilehandler "marketplace_backend/internal/feature/profile/transport/handler"
	profileusecase "marketplace_backend/internal/feature/profile/usecase"
	infradb "marketplace_backend/internal/platform/db"
	jwtmw "marketplace_backend/internal/platform/jwt"
	"marketplace_backend/internal/platform/mail"
	infraredis "marketplace_backend/internal/platform/redis"
	"marketplace_backend/internal/platform/verification"
	"marketplace_backend/internal/shared/ratelimiter"
)

const (
	// tokenLifetime は発行するJWTの有効期間です。
	tokenLifetime = 15 * 24 * time.Hour

	// mailRateLimit は1分あたりの送信メール数の上限です。
	mailRateLimit = 60
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis（確認コードストアの置き場所。TTLが唯一の期限管理なので必須）
	rdb, err := infraredis.NewRedisClient()
	if err != nil {
		log.Fatal("[ERROR] Redis unavailable: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository / Store
	userRepo := authadapters.NewUserMySQL(db)
	codeStore := verification.NewCodeRedis(rdb, "verification")

	// メール送信（送信頻度を固定ウィンドウで制限）
	limiter := ratelimiter.NewRateLimiter(mailRateLimit, time.Minute)
	mailer := mail.NewMailer(limiter)

	// Token
	generator := jwtmw.NewGenerator(secret, tokenLifetime)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, codeStore, mailer, generator)
	profileUC := profileusecase.NewProfileUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	profileH := profilehandler.NewProfileHandler(profileUC)

	// ルータ生成
	router := router.NewRouter(authH, profileH, userRepo)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

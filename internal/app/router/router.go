package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	profilehandler "marketplace_backend/internal/feature/profile/transport/handler"
	"marketplace_backend/internal/platform/http/handler"
	jwtmw "marketplace_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, profile *profilehandler.ProfileHandler,
	users jwtmw.UserResolver) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから呼ばれるためCORSを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録（コード発行と検証の両フェーズ）
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になり、ユーザーがコンテキストに載る
	auth.Use(jwtmw.AuthRequired(users))
	{
		auth.GET("/profile", profile.Get)
		auth.PUT("/profile", profile.Update)
	}

	return r
}

// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/transport/http/dto"
	"marketplace_backend/internal/feature/auth/usecase"
)

// codeSentMessage はコード発行フェーズ成功時のレスポンス文言です。
const codeSentMessage = "Verification code sent to your email. " +
	"Please submit the code along with your registration details to complete registration."

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// RequestCode は確認コードを発行し、指定のメールアドレスに送信します。
	RequestCode(ctx context.Context, email string) error
	// Register は確認コードを検証し、検証済みユーザーを作成してトークンを返します。
	Register(ctx context.Context, name, email, password, code string) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// verificationCodeが空のリクエストはコード発行フェーズとして処理し200を返却、
// コード付きリクエストは検証フェーズとして処理し、成功時は201でトークンを返却します。
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}

	if req.VerificationCode == "" {
		h.requestCode(c, req)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.VerificationCode)
	if err != nil {
		h.registerError(c, req.Email, err)
		return
	}
	slog.Info("user registration successful", "email", result.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{Token: result.Token, Name: result.Name, Email: result.Email})
}

// requestCode はコード発行フェーズを処理します。
func (h *AuthHandler) requestCode(c *gin.Context, req dto.RegisterReq) {
	if err := h.auth.RequestCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "User already exists with that email"})
		case errors.Is(err, usecase.ErrDeliveryFailed):
			slog.Error("verification email delivery failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error sending verification email"})
		default:
			slog.Error("code request failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
		}
		return
	}
	slog.Info("verification code sent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: codeSentMessage})
}

// registerError は検証フェーズのエラーをHTTPステータスに対応付けます。
func (h *AuthHandler) registerError(c *gin.Context, email string, err error) {
	slog.Warn("registration failed", "error", err, "email", email, "remote_addr", c.ClientIP())
	switch {
	case errors.Is(err, usecase.ErrCodeNotFound):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "No verification code found. Please request a new one."})
	case errors.Is(err, usecase.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid verification code."})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "User already exists with that email"})
	default:
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は400を返却（未知のメールとパスワード不一致は区別しない）
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request"})
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUnverifiedAccount):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Please verify your email before logging in"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Server error"})
		}
		return
	}
	slog.Info("user login successful", "email", result.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{Token: result.Token, Name: result.Name, Email: result.Email})
}

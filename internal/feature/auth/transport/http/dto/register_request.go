// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
// VerificationCodeが空の場合はコード発行フェーズ、指定された場合は検証フェーズとして扱われます。
type RegisterReq struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	VerificationCode string `json:"verificationCode" binding:"omitempty,len=6,numeric"`
}

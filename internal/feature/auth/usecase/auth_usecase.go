// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// codeTTL は確認コードの有効期間を定義します。
	codeTTL = 600 * time.Second

	// mailSubject は確認コードメールの件名です。
	mailSubject = "Your Verification Code"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// CodeStore は確認コードの一時保存層を抽象化します。
// コードの生存状態はストア自身のTTLが唯一の正であり、期限切れは単なる不在として現れます。
type CodeStore interface {
	// Set はメールアドレスに対するコードをTTL付きで無条件に上書き保存します。
	Set(ctx context.Context, email, code string, ttl time.Duration) error

	// Get は生存中のコードを返します。コードが存在しない場合は("", nil)を返します。
	Get(ctx context.Context, email string) (string, error)

	// Remove はコードを明示的に削除します。
	Remove(ctx context.Context, email string) error
}

// EmailSender はメール送信を抽象化します。
type EmailSender interface {
	Send(to, subject, body string) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint) (string, error)
}

// AuthResult はトークン発行を伴う認証操作の結果です。
type AuthResult struct {
	Token string
	Name  string
	Email string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	codes        CodeStore
	mail         EmailSender
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, codes CodeStore, mail EmailSender, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		codes:        codes,
		mail:         mail,
		jwtGenerator: jwtGenerator,
	}
}

// normalizeEmail はメールアドレスを比較可能な形に正規化します。
// 確認コードの照合キーとユーザーの一意制約が同じ値を見るよう、全経路で適用します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode は[100000, 999999]の範囲の6桁コードを生成します。
func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}

// RequestCode は登録フローの第一段階を処理します。
// 未登録のメールアドレスに対して確認コードを発行・保存し、メールで送信します。
// 送信に失敗した場合はErrDeliveryFailedを返しますが、保存済みコードはそのまま残します
// （再要求すれば上書きされ、直近のコードだけが有効になります）。
func (u *authUsecase) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	// 既存ユーザーの事前チェック。作成時の一意制約が最終的な砦になる
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	code := generateCode()
	if err := u.codes.Set(ctx, email, code, codeTTL); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	body := fmt.Sprintf("Your verification code is: %s", code)
	if err := u.mail.Send(email, mailSubject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

// Register は登録フローの第二段階を処理します。
// 提出されたコードを保存済みコードと文字列比較で照合し、一致すればパスワードを
// ハッシュ化して検証済みユーザーを作成、コードを削除してトークンを発行します。
// コード不一致ではコードを消しません（ロックアウト機構は存在しません）。
func (u *authUsecase) Register(ctx context.Context, name, email, password, code string) (*AuthResult, error) {
	email = normalizeEmail(email)

	stored, err := u.codes.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read verification code: %w", err)
	}
	if stored == "" {
		return nil, ErrCodeNotFound
	}
	if stored != code {
		return nil, ErrInvalidCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:       name,
		Email:      email,
		Password:   string(hashed),
		IsVerified: true,
	}
	// 同時登録のレースはここで一意制約違反として敗者に返る
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.codes.Remove(ctx, email); err != nil {
		// ユーザーは既に作成済みなのでリクエストは失敗させない。コードはTTLで消える
		slog.Warn("failed to remove verification code", "email", email, "error", err)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, Name: user.Name, Email: user.Email}, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 未検出とパスワード不一致は同一のErrInvalidCredentialsとして返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	// 検証チェックはパスワード照合の後。未検証アカウントの列挙を避ける
	if !user.IsVerified {
		return nil, ErrUnverifiedAccount
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID)
	if tokenErr != nil {
		return nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return &AuthResult{Token: token, Name: user.Name, Email: user.Email}, nil
}

// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"marketplace_backend/internal/feature/auth/domain"
	"marketplace_backend/internal/feature/auth/domain/entity"
)

// userMySQL はユーザーリポジトリのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type userMySQL struct {
	db *gorm.DB
}

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return mapDuplicateErr(err)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update は指定されたカラムだけを部分更新し、更新後のユーザーを返します。
// ユーザーが存在しない場合はdomain.ErrUserNotFound、メールアドレスの変更が
// 既存ユーザーと衝突する場合はdomain.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Update(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
	// 存在チェックを先に行い、空更新でも一貫した結果を返す
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&entity.User{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, mapDuplicateErr(err)
		}
	}

	return r.FindByID(ctx, id)
}

// mapDuplicateErr はMySQLの一意制約違反をドメインエラーに変換します。
func mapDuplicateErr(err error) error {
	// MySQLエラー1062: ユニークキーの重複エントリ
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return domain.ErrEmailAlreadyExists
	}
	// テスト用SQLiteは固有のエラー型を返すため、メッセージでも判定する
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/outlinedev/outline/internal/model"
	appErr "github.com/outlinedev/outline/internal/pkg/errors"
)

var userFields = []string{
	"id", "email", "password_hash", "name", "university", "program",
	"language", "citation_style", "voice_id", "ctime", "mtime",
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"name":           user.Name,
		"university":     user.University,
		"program":        user.Program,
		"language":       user.Language,
		"citation_style": user.CitationStyle,
		"voice_id":       user.VoiceID,
		"ctime":          user.Ctime,
		"mtime":          user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var user model.User
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.University, &user.Program, &user.Language, &user.CitationStyle,
		&user.VoiceID, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	where := map[string]interface{}{
		"id": user.ID,
	}
	update := map[string]interface{}{
		"name":           user.Name,
		"university":     user.University,
		"program":        user.Program,
		"language":       user.Language,
		"citation_style": user.CitationStyle,
		"voice_id":       user.VoiceID,
		"mtime":          user.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

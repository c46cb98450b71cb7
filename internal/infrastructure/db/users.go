package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
	"github.com/groceryhub/grocery-api/pkg/apperr"
	"github.com/groceryhub/grocery-api/pkg/helpers"
)

const (
	userFieldName     = "username"
	userFieldMail     = "email"
	userFieldPassword = "password"
	userFieldSaltMail = "salt_mail"
	userFieldSaltPwd  = "salt_password"

	// usersKey is the username directory: lowercased username → user id.
	// Uniqueness is case-insensitive by construction.
	usersKey = "users"
)

func userKey(userID entity.UserID) string {
	return fmt.Sprintf("user:%s", userID)
}

// RegisterUser creates the account record and its directory entry. Email
// and password are stored as salted argon2i hashes; the salts are kept on
// the record so login can re-derive.
func (d *DB) RegisterUser(ctx context.Context, username, email, password string) (entity.UserID, error) {
	norm := strings.ToLower(username)
	taken, err := d.kv.HExists(ctx, usersKey, norm)
	if err != nil {
		return "", storeErr("checking username", err)
	}
	if taken {
		return "", apperr.UsernameTaken(fmt.Sprintf("username %s is not available", username))
	}
	saltMail, err := helpers.NewSalt()
	if err != nil {
		return "", apperr.Internal("generating salt", err)
	}
	saltPwd, err := helpers.NewSalt()
	if err != nil {
		return "", apperr.Internal("generating salt", err)
	}
	userID, err := d.nextUserID(ctx)
	if err != nil {
		return "", err
	}
	fields := map[string]string{
		userFieldName:     username,
		userFieldMail:     helpers.Hash(email, saltMail),
		userFieldPassword: helpers.Hash(password, saltPwd),
		userFieldSaltMail: saltMail,
		userFieldSaltPwd:  saltPwd,
	}
	if err := d.kv.HSetMultiple(ctx, userKey(userID), fields); err != nil {
		return "", storeErr("writing user record", err)
	}
	if err := d.kv.HSet(ctx, usersKey, norm, string(userID)); err != nil {
		return "", storeErr("writing username directory", err)
	}
	return userID, nil
}

// VerifyPassword resolves the username case-insensitively and compares the
// salted hash. Unknown user and bad password are indistinguishable to the
// caller.
func (d *DB) VerifyPassword(ctx context.Context, username, password string) (entity.UserID, error) {
	id, err := d.kv.HGet(ctx, usersKey, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, kv.ErrNil) {
			return "", apperr.InvalidCredentials("invalid username or password")
		}
		return "", storeErr("resolving username", err)
	}
	userID := entity.UserID(id)
	key := userKey(userID)
	saltPwd, err := d.kv.HGet(ctx, key, userFieldSaltPwd)
	if err != nil {
		return "", storeErr("reading password salt", err)
	}
	stored, err := d.kv.HGet(ctx, key, userFieldPassword)
	if err != nil {
		return "", storeErr("reading password hash", err)
	}
	if helpers.Hash(password, saltPwd) != stored {
		return "", apperr.InvalidCredentials("invalid username or password")
	}
	return userID, nil
}

// DeleteUser destroys the account resolved from the session token: all
// owned stores (cascading through aisles and products), the directory
// entry, every live session, and finally the record itself.
func (d *DB) DeleteUser(ctx context.Context, token string) error {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	key := userKey(userID)
	username, err := d.kv.HGet(ctx, key, userFieldName)
	if err != nil {
		return storeErr("reading username", err)
	}
	if err := d.DeleteAllUserStores(ctx, token); err != nil {
		return err
	}
	if err := d.kv.HDel(ctx, usersKey, strings.ToLower(username)); err != nil {
		return storeErr("removing username directory entry", err)
	}
	if err := d.DeleteAllSessions(ctx, token); err != nil {
		return err
	}
	if _, err := d.kv.Del(ctx, key); err != nil {
		return storeErr("deleting user record", err)
	}
	return nil
}

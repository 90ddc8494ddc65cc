package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResolveUser maps a raw identifier to a user record, creating a minimal
// record when the identifier is an unknown email address. Every request
// that writes user-owned data resolves its user through here exactly once.
//
// Identifiers that look like database ids (IsObjectIDHex) are looked up by
// id; everything else by email. An unknown identifier that is not
// email-shaped yields ErrNotFound.
func ResolveUser(ctx context.Context, users UserStore, identifier string) (User, error) {
	var (
		user User
		err  error
	)

	if IsObjectIDHex(identifier) {
		var id bson.ObjectID
		id, err = bson.ObjectIDFromHex(strings.ToLower(identifier))
		if err != nil {
			return User{}, ErrNotFound
		}
		user, err = users.GetUserByID(ctx, id)
	} else {
		user, err = users.GetUserByEmail(ctx, identifier)
	}

	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	if !strings.Contains(identifier, "@") {
		return User{}, ErrNotFound
	}

	created := User{
		Username:  identifier[:strings.Index(identifier, "@")],
		Email:     identifier,
		CreatedAt: time.Now().UTC(),
	}
	if err := users.CreateUser(ctx, &created); err != nil {
		// A concurrent request may have created the same user; the unique
		// email index reports that as a duplicate and the re-fetch below
		// resolves it either way.
		if !errors.Is(err, ErrDuplicate) {
			return User{}, err
		}
	}

	return users.GetUserByEmail(ctx, identifier)
}

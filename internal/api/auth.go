package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"eduwrite-backend/internal/store"
	"eduwrite-backend/pkg/api"

	"golang.org/x/crypto/bcrypt"
)

func userInfo(user store.User) api.UserInfo {
	return api.UserInfo{
		Id:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Username,
	}
}

func (s *BackendService) Signup(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SignupRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "All fields are required")
	}

	ctx := r.Context()
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, CodedErrorf(http.StatusBadRequest, "User already exists with this email")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, CodedErrorf(http.StatusInternalServerError, "error checking existing user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error hashing password: %v", err)
	}

	now := time.Now().UTC()
	user := store.User{
		Username:  req.Name,
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: now,
		LastLogin: now,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, CodedErrorf(http.StatusBadRequest, "User already exists with this email")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "error creating user: %v", err)
	}

	if err := s.store.RecordLogin(ctx, &store.LoginEvent{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Timestamp: now,
		Type:      "signup",
	}); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error recording signup: %v", err)
	}

	return api.AuthResponse{Status: "success", User: userInfo(user)}, nil
}

func (s *BackendService) EmailAuth(r *http.Request) (any, error) {
	req, err := ParseRequest[api.EmailAuthRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, CodedErrorf(http.StatusBadRequest, "Invalid email")
	}
	if req.Password == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "Password is required")
	}

	ctx := r.Context()
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "User not found. Please create an account.")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "error looking up user: %v", err)
	}

	if user.Password == "" {
		// Accounts created implicitly during generation have no password yet.
		// The first credentialed login adopts the supplied password.
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, CodedErrorf(http.StatusInternalServerError, "error hashing password: %v", err)
		}
		if err := s.store.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return nil, CodedErrorf(http.StatusInternalServerError, "error setting password: %v", err)
		}
	} else if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, CodedErrorf(http.StatusUnauthorized, "Invalid password")
	}

	now := time.Now().UTC()
	if err := s.store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error updating last login: %v", err)
	}
	if err := s.store.RecordLogin(ctx, &store.LoginEvent{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Timestamp: now,
		Type:      "login",
	}); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error recording login: %v", err)
	}

	return api.AuthResponse{Status: "success", User: userInfo(user)}, nil
}

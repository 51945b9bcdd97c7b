package http

import (
	"net/http"

	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/marketsdk"
)

// UsersHandler serves signup and login.
type UsersHandler struct {
	UserService  *service.UserService
	policy       statusPolicy
	maxBodyBytes int64
}

// HandleSignup handles POST /user/signup
//
//	@Summary		Register a user
//	@Description	Creates a user and returns its bearer token. Accepts JSON, or a form with an optional "picture" avatar file.
//	@Tags			Users
//	@Accept			json,mpfd,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		marketsdk.SignupRequest		true	"Signup fields"
//	@Param			picture	formData	file						false	"Avatar"
//	@Success		200		{object}	marketsdk.SignupResponse	"_id, token, account"
//	@Failure		400		{object}	marketsdk.ErrorResponse		"missing field or malformed body"
//	@Failure		409		{object}	marketsdk.ErrorResponse		"email or username already exists"
//	@Failure		502		{object}	marketsdk.ErrorResponse		"image host failure"
//	@Router			/user/signup [post].
func (h *UsersHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Bind and validate
	var req marketsdk.SignupRequest
	err := bindRequest(w, r, h.maxBodyBytes, &req, marketsdk.SignupFields, func(form formValues) error {
		req = marketsdk.SignupRequest{
			Email:    form.get(marketsdk.FieldEmail),
			Username: form.get(marketsdk.FieldUsername),
			Phone:    form.get(marketsdk.FieldPhone),
			Password: form.get(marketsdk.FieldPassword),
		}
		return nil
	})
	if err == nil {
		err = checkFields(req)
	}
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	// 2. Optional avatar
	pic, closer, err := openPicture(r, marketsdk.FieldPicture)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}
	defer func() { _ = closer.Close() }()

	// 3. Register
	u, err := h.UserService.Signup(ctx, service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Phone:    req.Phone,
		Password: req.Password,
		Picture:  pic,
	})
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, marketsdk.SignupResponse{
		ID:      u.ID,
		Token:   u.Token,
		Account: accountResponse(u.Account),
	})
}

// HandleLogin handles POST /user/login
//
//	@Summary		Check credentials
//	@Description	Verifies a password for a username, or for an email when no username is given. No token is issued.
//	@Tags			Users
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		marketsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	marketsdk.MessageResponse	"User successfully logged"
//	@Failure		400		{object}	marketsdk.ErrorResponse		"Wrong password"
//	@Failure		401		{object}	marketsdk.ErrorResponse		"Incorrect username or email"
//	@Router			/user/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req marketsdk.LoginRequest
	err := bindRequest(w, r, h.maxBodyBytes, &req, marketsdk.LoginFields, func(form formValues) error {
		req = marketsdk.LoginRequest{
			Username: form.get(marketsdk.FieldUsername),
			Email:    form.get(marketsdk.FieldEmail),
			Password: form.get(marketsdk.FieldPassword),
		}
		return nil
	})
	if err == nil {
		err = checkFields(req)
	}
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	if _, err := h.UserService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, marketsdk.MessageResponse{Message: "User successfully logged"})
}

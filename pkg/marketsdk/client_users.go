package marketsdk

import (
	"context"
	"net/http"
)

// Signup registers a user. pic is optional; when set the request is sent as
// multipart form data.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest, pic *Picture) (*SignupResponse, error) {
	var (
		resp *http.Response
		err  error
	)

	if pic == nil {
		resp, err = c.doJSON(ctx, http.MethodPost, "/user/signup", req, "")
	} else {
		fields := map[string]string{
			FieldEmail:    req.Email,
			FieldUsername: req.Username,
			FieldPassword: req.Password,
		}
		if req.Phone != "" {
			fields[FieldPhone] = req.Phone
		}

		body, contentType, berr := multipartBody(fields, FieldPicture, pic)
		if berr != nil {
			return nil, berr
		}
		resp, err = c.doRequest(ctx, http.MethodPost, "/user/signup", body,
			map[string]string{"Content-Type": contentType}, "")
	}
	if err != nil {
		return nil, err
	}

	var out SignupResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login checks credentials. No token is issued; the signup token stays the
// credential.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/user/login", req, "")
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

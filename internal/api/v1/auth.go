package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/domain"
)

type SignUpInput struct {
	Body struct {
		Email      string `json:"email" format:"email" maxLength:"255" doc:"User email"`
		Password   string `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: signup credential DTO
		FullName   string `json:"full_name" minLength:"1" maxLength:"255" doc:"Display name"`
		Age        int    `json:"age,omitempty" minimum:"0" doc:"Age"`
		SoldeTotal int64  `json:"solde_total,omitempty" minimum:"0" doc:"Initial solde"`
	}
}

type SignUpOutput struct {
	Body *domain.User
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" format:"email" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string       `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string       `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
		User         *domain.User `json:"user"`
		RoleName     string       `json:"role_name,omitempty"`
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type ForgotPasswordInput struct {
	Body struct {
		Email string `json:"email" format:"email" maxLength:"255" doc:"Account email"`
	}
}

type ForgotPasswordOutput struct {
	Body struct {
		Message    string `json:"message"`
		ResetToken string `json:"reset_token,omitempty"` //nolint:gosec // G117: no mailer, token returned to caller
	}
}

type ResetPasswordInput struct {
	Body struct {
		ResetToken  string `json:"reset_token" minLength:"1" doc:"Reset token"` //nolint:gosec // G117: password reset DTO
		NewPassword string `json:"new_password" minLength:"8" maxLength:"128" doc:"New password"`
	}
}

type ResetPasswordOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/auth/signup",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SignUpInput) (*SignUpOutput, error) {
		user, err := authSvc.SignUp(ctx, input.Body.Email, input.Body.Password, input.Body.FullName, input.Body.Age, input.Body.SoldeTotal)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("user already exists")
			}
			return nil, huma.Error500InternalServerError("failed to sign up", err)
		}

		return &SignUpOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		result, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				return nil, huma.Error401Unauthorized("invalid email or password")
			case errors.Is(err, auth.ErrUserDeactivated):
				return nil, huma.Error400BadRequest("user is deactivated")
			case errors.Is(err, auth.ErrUserDeleted):
				return nil, huma.Error400BadRequest("user is deleted")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = result.AccessToken
		out.Body.RefreshToken = result.RefreshToken
		out.Body.User = result.User
		out.Body.RoleName = result.RoleName
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/auth/forgot-password",
		Summary:     "Request a password reset token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *ForgotPasswordInput) (*ForgotPasswordOutput, error) {
		out := &ForgotPasswordOutput{}
		out.Body.Message = "if the account exists, a reset token has been issued"

		token, err := authSvc.ForgotPassword(ctx, input.Body.Email)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				// Same response as success so the endpoint does not reveal
				// which emails have accounts.
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to issue reset token", err)
		}

		out.Body.ResetToken = token
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reset-password",
		Method:      http.MethodPost,
		Path:        "/auth/reset-password",
		Summary:     "Reset password with a reset token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *ResetPasswordInput) (*ResetPasswordOutput, error) {
		err := authSvc.ResetPassword(ctx, input.Body.ResetToken, input.Body.NewPassword)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return nil, huma.Error401Unauthorized("invalid or expired reset token")
			}
			return nil, huma.Error500InternalServerError("failed to reset password", err)
		}

		out := &ResetPasswordOutput{}
		out.Body.Message = "password updated"
		return out, nil
	})
}

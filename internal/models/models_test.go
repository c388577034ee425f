package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	require.NoError(t, base.BeforeCreate(nil))
	require.NotEmpty(t, base.ID)
}

func TestBaseModelBeforeCreateKeepsExistingID(t *testing.T) {
	base := BaseModel{ID: "fixed"}
	require.NoError(t, base.BeforeCreate(nil))
	require.Equal(t, "fixed", base.ID)
}

func TestUserBeforeSaveNormalisesEmail(t *testing.T) {
	user := &User{Email: "  TEST@MyEmail.com "}
	require.NoError(t, user.BeforeSave(nil))
	require.Equal(t, "test@myemail.com", user.Email)
	require.Equal(t, AccountPending, user.Status)
	require.False(t, user.IsConfirmed())
}

func TestUserAfterFindNormalisesEmail(t *testing.T) {
	user := &User{Email: "Legacy@Example.COM", Status: AccountConfirmed}
	require.NoError(t, user.AfterFind(nil))
	require.Equal(t, "legacy@example.com", user.Email)
	require.True(t, user.IsConfirmed())
}

func TestCodePurposeValid(t *testing.T) {
	require.True(t, PurposeRegistrationConfirmation.Valid())
	require.True(t, PurposePasswordReset.Valid())
	require.False(t, CodePurpose("login").Valid())
}

func TestOneTimeCodeExpired(t *testing.T) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	code := OneTimeCode{ExpiresAt: now.Add(time.Minute)}
	require.False(t, code.Expired(now))
	require.True(t, code.Expired(now.Add(time.Minute)))
}

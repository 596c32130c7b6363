package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "ana", jwt.RoleOperario, "tenebrio-farm", 5)
	require.NoError(t, err)

	user, role, err := jwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "ana", user)
	assert.Equal(t, jwt.RoleOperario, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "ana", jwt.RoleAdmin, "", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("s3cret", "ana", jwt.RoleAdmin, "", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "ana", jwt.RoleAdmin, "", 5)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "x")
	assert.Error(t, err)
}

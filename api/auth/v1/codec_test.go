package authv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_UsesJSONFieldNames(t *testing.T) {
	b, err := Codec{}.Marshal(&RefreshRequest{AccountID: "a1", RefreshToken: "tok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accountId":"a1","refreshToken":"tok"}`, string(b))

	var req ResetPasswordRequest
	require.NoError(t, Codec{}.Unmarshal([]byte(`{"email":"a@x.io","otp":"123456","newPassword":"secret1"}`), &req))
	assert.Equal(t, ResetPasswordRequest{Email: "a@x.io", Otp: "123456", NewPassword: "secret1"}, req)
}

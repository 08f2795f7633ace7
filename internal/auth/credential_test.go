package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		cred    Credential
		want    string
		wantErr bool
	}{
		{name: "bearer header", cred: Credential{Header: "Bearer abc"}, want: "abc"},
		{name: "lower-case scheme falls back to cookie", cred: Credential{Header: "bearer abc", Cookie: "from-cookie"}, want: "from-cookie"},
		{name: "lower-case scheme without cookie", cred: Credential{Header: "bearer abc"}, wantErr: true},
		{name: "cookie only", cred: Credential{Cookie: "from-cookie"}, want: "from-cookie"},
		{name: "header wins over cookie", cred: Credential{Header: "Bearer from-header", Cookie: "from-cookie"}, want: "from-header"},
		{name: "non-bearer header falls back to cookie", cred: Credential{Header: "Basic dXNlcjpwdw==", Cookie: "from-cookie"}, want: "from-cookie"},
		{name: "nothing", cred: Credential{}, wantErr: true},
		{name: "non-bearer header without cookie", cred: Credential{Header: "Basic dXNlcjpwdw=="}, wantErr: true},
		{name: "bearer without token ignores cookie", cred: Credential{Header: "Bearer ", Cookie: "from-cookie"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.cred)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMissingCredential), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

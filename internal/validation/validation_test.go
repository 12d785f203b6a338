package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVMIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantErr    bool
	}{
		{name: "numeric vmid", identifier: "100"},
		{name: "vm name", identifier: "web-01"},
		{name: "empty", identifier: "", wantErr: true},
		{name: "whitespace", identifier: "web 01", wantErr: true},
		{name: "slash", identifier: "web/01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVMIdentifier(tt.identifier)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name     string
		snapname string
		wantErr  bool
	}{
		{name: "simple", snapname: "nightly"},
		{name: "generated style", snapname: "snapshot-20240101-120000"},
		{name: "underscores", snapname: "pre_upgrade"},
		{name: "empty", snapname: "", wantErr: true},
		{name: "leading digit", snapname: "1snapshot", wantErr: true},
		{name: "special characters", snapname: "snap@shot", wantErr: true},
		{name: "too long", snapname: "a" + strings.Repeat("b", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.snapname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astraconsult/ACG-BookingService/pkg/ptr"
)

func TestValidateRequest_ClientFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(req *Request) {},
		},
		{
			name:    "missing client name",
			mutate:  func(req *Request) { req.ClientName = "" },
			wantErr: true,
		},
		{
			name:    "name too long",
			mutate:  func(req *Request) { req.ClientName = strings.Repeat("a", 201) },
			wantErr: true,
		},
		{
			name:    "missing email",
			mutate:  func(req *Request) { req.ClientEmail = "" },
			wantErr: true,
		},
		{
			name:    "invalid email syntax",
			mutate:  func(req *Request) { req.ClientEmail = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "email without domain",
			mutate:  func(req *Request) { req.ClientEmail = "anna@" },
			wantErr: true,
		},
		{
			name:   "optional phone and company",
			mutate: func(req *Request) { req.ClientPhone = ptr.Ptr("+7 900 123-45-67"); req.ClientCompany = ptr.Ptr("Acme LLC") },
		},
		{
			name:    "phone too long",
			mutate:  func(req *Request) { req.ClientPhone = ptr.Ptr(strings.Repeat("1", 33)) },
			wantErr: true,
		},
		{
			name:    "company too long",
			mutate:  func(req *Request) { req.ClientCompany = ptr.Ptr(strings.Repeat("a", 201)) },
			wantErr: true,
		},
		{
			name:    "notes too long",
			mutate:  func(req *Request) { req.Notes = ptr.Ptr(strings.Repeat("a", 501)) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRequest_TimeRange(t *testing.T) {
	req := validRequest(t)
	req.StartTime = ts(t, "11:00")
	req.EndTime = ts(t, "10:00")
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	// Нулевая длительность тоже отклоняется
	req = validRequest(t)
	req.EndTime = req.StartTime
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_RequiredFields(t *testing.T) {
	req := validRequest(t)
	req.ServiceID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest(t)
	req.Date = time.Time{}
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest(t)
	req.StartTime = ""
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

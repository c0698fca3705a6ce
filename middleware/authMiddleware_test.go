package middleware

import (
	"net/http/httptest"
	"testing"

	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
)

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []string
		want     bool
	}{
		{"adminInSet", models.RoleAdmin, []string{models.RoleAdmin, models.RoleBackOffice}, true},
		{"roleNotInSet", models.RoleWarehouse, []string{models.RoleAdmin, models.RoleBackOffice}, false},
		{"emptySetAllowsEveryone", models.RoleFieldService, nil, true},
		{"exactMatchOnly", "admin2", []string{models.RoleAdmin}, false},
		{"emptyRoleDenied", "", []string{models.RoleAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleAllowed(tt.role, tt.required); got != tt.want {
				t.Errorf("RoleAllowed(%q, %v) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"bearerHeader", map[string]string{"Authorization": "Bearer abc.def.ghi"}, "abc.def.ghi"},
		{"legacyTokenHeader", map[string]string{"token": "xyz"}, "xyz"},
		{"bearerWinsOverLegacy", map[string]string{"Authorization": "Bearer abc", "token": "xyz"}, "abc"},
		{"missing", nil, ""},
		{"nonBearerAuthorizationIgnored", map[string]string{"Authorization": "Basic abc"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/orders", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := bearerToken(c); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorizeDeniesMissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/audit", nil)

	Authorize(models.RoleAdmin)(c)

	if recorder.Code != 401 {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
	if !c.IsAborted() {
		t.Error("expected the chain to be aborted")
	}
}

func TestAuthorizeDeniesWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/audit", nil)
	c.Set(authUserKey, models.AuthUser{User_id: "u1", Role: models.RoleWarehouse})

	Authorize(models.RoleAdmin)(c)

	if recorder.Code != 403 {
		t.Errorf("status = %d, want 403", recorder.Code)
	}
}

func TestAuthorizeAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/audit", nil)
	c.Set(authUserKey, models.AuthUser{User_id: "u1", Role: models.RoleAdmin})

	Authorize(models.RoleAdmin, models.RoleBackOffice)(c)

	if c.IsAborted() {
		t.Error("matching role must not abort the chain")
	}
}

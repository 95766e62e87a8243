package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/dto"
	"buildxpert/test/helpers"
)

func TestContactForm_PublicSubmit(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/contacts", dto.CreateContactRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Do you paint exteriors?",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var contact dto.ContactResponse
	helpers.DecodeJSON(t, w, &contact)
	assert.Equal(t, "new", string(contact.Status))
}

func TestContactAdmin_ListAndStatus(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, clientToken := server.CreateUser(t, "Client", "client@example.com", "CLIENT")
	_, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")

	w := server.SendRequest(t, http.MethodPost, "/api/v1/contacts", dto.CreateContactRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Quote please",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var contact dto.ContactResponse
	helpers.DecodeJSON(t, w, &contact)

	// Back office is admin-only.
	w = server.SendRequest(t, http.MethodGet, "/api/v1/admin/contacts", nil, clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = server.SendRequest(t, http.MethodGet, "/api/v1/admin/contacts", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.ContactListResponse
	helpers.DecodeJSON(t, w, &list)
	require.Len(t, list.Contacts, 1)

	w = server.SendRequest(t, http.MethodPut, "/api/v1/admin/contacts/"+contact.ID,
		dto.UpdateContactStatusRequest{Status: "read"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.ContactResponse
	helpers.DecodeJSON(t, w, &updated)
	assert.Equal(t, "read", string(updated.Status))
}

func TestDashboard_Counters(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	_, adminToken := server.CreateUser(t, "Admin", "admin@example.com", "ADMIN")
	server.CreateUser(t, "Client", "client@example.com", "CLIENT")

	w := server.SendRequest(t, http.MethodGet, "/api/v1/admin/dashboard", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary dto.DashboardResponse
	helpers.DecodeJSON(t, w, &summary)
	assert.Equal(t, int64(1), summary.Clients)
}

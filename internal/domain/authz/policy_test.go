package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercial-api/internal/domain/authz"
)

var (
	admin    = authz.Principal{UserID: "u-admin", Role: authz.RoleAdmin}
	vendedor = authz.Principal{UserID: "u-ven", Role: authz.RoleVendedor}
	contador = authz.Principal{UserID: "u-con", Role: authz.RoleContador}
)

func TestPolicy_AdminPuedeTodo(t *testing.T) {
	pol := authz.DefaultPolicy()
	assert.True(t, pol.Can(admin, authz.ActionDelete, authz.SubjectAccount, nil))
	assert.True(t, pol.Can(admin, authz.ActionUpdate, authz.SubjectMovement, authz.Resource{authz.FieldCreatedByID: "otro"}))
}

func TestPolicy_VendedorSoloSusMovimientos(t *testing.T) {
	pol := authz.DefaultPolicy()

	// A nivel de tipo basta una regla aplicable.
	assert.True(t, pol.Can(vendedor, authz.ActionUpdate, authz.SubjectMovement, nil))

	mine := authz.Resource{authz.FieldCreatedByID: vendedor.UserID}
	theirs := authz.Resource{authz.FieldCreatedByID: "u-otro"}
	assert.True(t, pol.Can(vendedor, authz.ActionUpdate, authz.SubjectMovement, mine))
	assert.False(t, pol.Can(vendedor, authz.ActionUpdate, authz.SubjectMovement, theirs))
	assert.False(t, pol.Can(vendedor, authz.ActionDelete, authz.SubjectMovement, authz.Resource{}))
}

func TestPolicy_VendedorNoGestionaCuentas(t *testing.T) {
	pol := authz.DefaultPolicy()
	assert.True(t, pol.Can(vendedor, authz.ActionRead, authz.SubjectAccount, nil))
	assert.False(t, pol.Can(vendedor, authz.ActionCreate, authz.SubjectAccount, nil))
	assert.False(t, pol.Can(vendedor, authz.ActionUpdate, authz.SubjectPayment, nil))
	assert.True(t, pol.Can(contador, authz.ActionUpdate, authz.SubjectPayment, nil))
}

func TestPolicy_RolDesconocidoOUsuarioVacio(t *testing.T) {
	pol := authz.DefaultPolicy()
	assert.False(t, pol.Can(authz.Principal{UserID: "x", Role: "invitado"}, authz.ActionRead, authz.SubjectProduct, nil))
	assert.False(t, pol.Can(authz.Principal{Role: authz.RoleAdmin}, authz.ActionRead, authz.SubjectProduct, nil))
}

func TestEquals_LiteralYPrincipal(t *testing.T) {
	lit := authz.Equals{Field: "status", Value: authz.Literal("DRAFT")}
	assert.True(t, lit.Matches(vendedor, authz.Resource{"status": "DRAFT"}))
	assert.False(t, lit.Matches(vendedor, authz.Resource{"status": "PAID"}))
	assert.False(t, lit.Matches(vendedor, authz.Resource{}))

	own := authz.Equals{Field: "id", Value: authz.PrincipalID}
	assert.True(t, own.Matches(vendedor, authz.Resource{"id": "u-ven"}))
	assert.False(t, own.Matches(authz.Principal{}, authz.Resource{"id": ""}), "un principal sin ID nunca coincide")
}

// Package authz evalúa permisos declarativos (acción, sujeto, condición) contra la identidad
// del usuario y, cuando se tiene, la instancia del recurso.
// Las condiciones son valores tipados: la referencia al usuario actual se resuelve al evaluar,
// nunca sustituyendo texto dentro de reglas serializadas.
package authz

// Principal identidad autenticada que hace la petición.
type Principal struct {
	UserID string
	Role   string
}

// Resource campos de la instancia sobre la que se evalúa (ej. "created_by_id").
type Resource map[string]string

// Value operando de una condición: un literal o el ID del usuario que evalúa.
type Value struct {
	literal     string
	principalID bool
}

// Literal construye un valor fijo.
func Literal(s string) Value { return Value{literal: s} }

// PrincipalID se resuelve al UserID del Principal en el momento de evaluar.
var PrincipalID = Value{principalID: true}

func (v Value) resolve(p Principal) string {
	if v.principalID {
		return p.UserID
	}
	return v.literal
}

// Condition variante cerrada: Always o Equals.
type Condition interface {
	Matches(p Principal, r Resource) bool
	isCondition()
}

// Always se cumple siempre.
type Always struct{}

func (Always) Matches(Principal, Resource) bool { return true }
func (Always) isCondition()                     {}

// Equals se cumple si r[Field] coincide con Value resuelto. Un campo ausente nunca coincide.
type Equals struct {
	Field string
	Value Value
}

func (e Equals) Matches(p Principal, r Resource) bool {
	got, ok := r[e.Field]
	if !ok {
		return false
	}
	want := e.Value.resolve(p)
	return want != "" && got == want
}
func (Equals) isCondition() {}

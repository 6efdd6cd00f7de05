package authz

// Action verbo autorizable.
type Action string

const (
	ActionManage Action = "manage" // comodín: cualquier acción
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Subject tipo de recurso.
type Subject string

const (
	SubjectAll       Subject = "all" // comodín: cualquier sujeto
	SubjectMovement  Subject = "Movement"
	SubjectPayment   Subject = "Payment"
	SubjectAccount   Subject = "Account"
	SubjectProduct   Subject = "Product"
	SubjectContact   Subject = "Contact"
	SubjectOperation Subject = "Operation"
)

// Campo que las reglas por propietario comparan contra el usuario actual.
const FieldCreatedByID = "created_by_id"

// Rule permiso declarativo. Condition nil equivale a Always.
type Rule struct {
	Action    Action
	Subject   Subject
	Condition Condition
}

func (r Rule) covers(a Action, s Subject) bool {
	return (r.Action == ActionManage || r.Action == a) && (r.Subject == SubjectAll || r.Subject == s)
}

func (r Rule) condition() Condition {
	if r.Condition == nil {
		return Always{}
	}
	return r.Condition
}

// Policy reglas por rol. El almacenamiento de roles es externo; aquí solo se evalúa.
type Policy struct {
	roles map[string][]Rule
}

// NewPolicy construye la política a partir de reglas por rol.
func NewPolicy(roles map[string][]Rule) *Policy {
	return &Policy{roles: roles}
}

// Roles conocidos.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleContador  = "contador"
	RoleBodeguero = "bodeguero"
)

// DefaultPolicy reglas de los roles base:
//   - admin: todo.
//   - vendedor: lee todo; crea contactos, movimientos y pagos; modifica o borra solo sus movimientos.
//   - contador: lee todo; gestiona pagos y cuentas.
//   - bodeguero: lee todo; gestiona productos; crea movimientos.
func DefaultPolicy() *Policy {
	own := Equals{Field: FieldCreatedByID, Value: PrincipalID}
	return NewPolicy(map[string][]Rule{
		RoleAdmin: {
			{Action: ActionManage, Subject: SubjectAll},
		},
		RoleVendedor: {
			{Action: ActionRead, Subject: SubjectAll},
			{Action: ActionCreate, Subject: SubjectContact},
			{Action: ActionCreate, Subject: SubjectMovement},
			{Action: ActionUpdate, Subject: SubjectMovement, Condition: own},
			{Action: ActionDelete, Subject: SubjectMovement, Condition: own},
			{Action: ActionCreate, Subject: SubjectPayment},
		},
		RoleContador: {
			{Action: ActionRead, Subject: SubjectAll},
			{Action: ActionManage, Subject: SubjectPayment},
			{Action: ActionManage, Subject: SubjectAccount},
		},
		RoleBodeguero: {
			{Action: ActionRead, Subject: SubjectAll},
			{Action: ActionManage, Subject: SubjectProduct},
			{Action: ActionCreate, Subject: SubjectMovement},
		},
	})
}

// Can evalúa si p puede ejecutar action sobre subject.
// Con r == nil responde a nivel de tipo: basta una regla aplicable, sin mirar condiciones.
// Con r != nil la condición de alguna regla aplicable debe cumplirse sobre la instancia.
func (pol *Policy) Can(p Principal, action Action, subject Subject, r Resource) bool {
	if pol == nil || p.UserID == "" {
		return false
	}
	for _, rule := range pol.roles[p.Role] {
		if !rule.covers(action, subject) {
			continue
		}
		if r == nil || rule.condition().Matches(p, r) {
			return true
		}
	}
	return false
}

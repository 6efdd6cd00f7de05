package memory

import "github.com/jhoicas/Comercial-api/internal/domain/entity"

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneOperation(o *entity.Operation) *entity.Operation {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func cloneContact(ct *entity.Contact) *entity.Contact {
	if ct == nil {
		return nil
	}
	c := *ct
	return &c
}

// cloneMovement copia la cabecera; las líneas se guardan aparte.
func cloneMovement(m *entity.Movement) *entity.Movement {
	if m == nil {
		return nil
	}
	c := *m
	c.Lines = nil
	return &c
}

func cloneLines(lines []*entity.MovementLine) []*entity.MovementLine {
	out := make([]*entity.MovementLine, 0, len(lines))
	for _, l := range lines {
		c := *l
		out = append(out, &c)
	}
	return out
}

func clonePayment(p *entity.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	c := *p
	c.Entries = nil
	return &c
}

func cloneAccount(a *entity.Account) *entity.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func cloneEntry(e *entity.AccountEntry) *entity.AccountEntry {
	c := *e
	return &c
}

package ledger

import (
	"fmt"
	"sync"
	"time"
)

// PaymentCodePrefix prefijo de los códigos de pago.
const PaymentCodePrefix = "PAY"

// CodeGenerator produce códigos "{prefijo}-{milisegundos}". Dentro del proceso el timestamp
// es estrictamente creciente, así dos documentos creados en el mismo milisegundo no chocan.
type CodeGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewCodeGenerator construye el generador con el reloj del sistema.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{now: time.Now}
}

// Next devuelve el siguiente código para prefix.
func (g *CodeGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ts := g.now().UnixMilli()
	if ts <= g.last {
		ts = g.last + 1
	}
	g.last = ts
	return fmt.Sprintf("%s-%d", prefix, ts)
}

// seed genera el script SQL con los datos de configuración iniciales del libro:
// operaciones, medios de pago y plan de cuentas.
//
// Uso: go run ./cmd/seed [ruta/cuentas.csv]
// El CSV opcional agrega cuentas al plan (codigo;nombre;tipo). Se acepta UTF-8 o
// ISO-8859-1, que es como lo exportan las hojas de cálculo de contabilidad.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_ledger.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/seed"
)

func main() {
	now := time.Now().UTC()
	accounts := seed.Accounts(now)

	if len(os.Args) > 1 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		extra, err := readAccountsCSV(raw, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
		accounts = mergeAccounts(accounts, extra)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_ledger.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, seed.Operations(now), seed.PaymentMethods(), accounts); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d cuentas\n", outPath, len(accounts))
}

// readAccountsCSV lee codigo;nombre;tipo. Si el contenido no es UTF-8 válido se decodifica como Latin-1.
func readAccountsCSV(raw []byte, now time.Time) ([]*entity.Account, error) {
	var r io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var out []*entity.Account
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		code, name := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		t := entity.AccountType(strings.ToUpper(strings.TrimSpace(rec[2])))
		if line == 1 && strings.EqualFold(code, "codigo") {
			continue
		}
		if code == "" || name == "" || !t.Valid() {
			return nil, fmt.Errorf("línea %d: cuenta inválida %q", line, strings.Join(rec, ";"))
		}
		out = append(out, &entity.Account{
			ID:          seed.StableID("account", code),
			AccountCode: code,
			Name:        name,
			AccountType: t,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out, nil
}

// mergeAccounts une por código (el CSV gana) y ordena por código.
func mergeAccounts(base, extra []*entity.Account) []*entity.Account {
	byCode := make(map[string]*entity.Account, len(base)+len(extra))
	for _, a := range base {
		byCode[a.AccountCode] = a
	}
	for _, a := range extra {
		byCode[a.AccountCode] = a
	}
	out := make([]*entity.Account, 0, len(byCode))
	for _, a := range byCode {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}

func writeSeed(w io.Writer, ops []*entity.Operation, methods []*entity.PaymentMethod, accounts []*entity.Account) error {
	var b strings.Builder
	b.WriteString("-- Datos iniciales del libro de ventas y pagos\n")
	b.WriteString("-- Generado por cmd/seed; los IDs son UUID v5 del código\n\n")

	b.WriteString("-- 1. Operaciones\n")
	b.WriteString("INSERT INTO operations (id, name, operation_code, operation_type, change_inventory, has_finance) VALUES\n")
	for i, o := range ops {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %t, %t)%s\n",
			o.ID, escapeSQL(o.Name), escapeSQL(o.OperationCode), o.OperationType, o.ChangeInventory, o.HasFinance, sep(i, len(ops)))
	}
	b.WriteString("ON CONFLICT (operation_code) DO NOTHING;\n\n")

	b.WriteString("-- 2. Medios de pago\n")
	b.WriteString("INSERT INTO payment_methods (id, name, description) VALUES\n")
	for i, m := range methods {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", m.ID, escapeSQL(m.Name), escapeSQL(m.Description), sep(i, len(methods)))
	}
	b.WriteString("ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description;\n\n")

	b.WriteString("-- 3. Plan de cuentas\n")
	b.WriteString("INSERT INTO accounts (id, account_code, name, account_type, balance, is_active) VALUES\n")
	for i, a := range accounts {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', 0, TRUE)%s\n",
			a.ID, escapeSQL(a.AccountCode), escapeSQL(a.Name), a.AccountType, sep(i, len(accounts)))
	}
	b.WriteString("ON CONFLICT (account_code) DO UPDATE SET name = EXCLUDED.name;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

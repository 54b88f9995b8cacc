// seed_stock genera un script SQL idempotente con productos y stock inicial de una sucursal
// a partir de un CSV exportado por el sistema anterior (ISO-8859-1, separado por ';').
//
// Uso: go run ./cmd/seed_stock <sucursal_id> [ruta/productos.csv] [salida.sql]
// Columnas: codigo;codigo_barras;nombre;precio;stock (la primera fila es encabezado).
// Por defecto lee productos.csv y escribe internal/infrastructure/postgres/migrations/900_seed_stock.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type fila struct {
	codigo       string
	codigoBarras string
	nombre       string
	precio       decimal.Decimal
	stock        int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_stock <sucursal_id> [productos.csv] [salida.sql]")
		os.Exit(2)
	}
	sucursal := os.Args[1]
	if _, err := uuid.Parse(sucursal); err != nil {
		fmt.Fprintf(os.Stderr, "sucursal_id inválido: %v\n", err)
		os.Exit(2)
	}
	csvPath := "productos.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "900_seed_stock.sql")
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	filas, err := leerCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := escribirSQL(out, sucursal, filas); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", outPath, len(filas))
}

// leerCSV decodifica ISO-8859-1 y valida cada fila. Las filas con código vacío se ignoran.
func leerCSV(r io.Reader) ([]fila, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	var filas []fila
	vistos := make(map[string]struct{})
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		codigo := strings.TrimSpace(rec[0])
		if codigo == "" {
			continue
		}
		if _, dup := vistos[codigo]; dup {
			return nil, fmt.Errorf("línea %d: código %s repetido", line, codigo)
		}
		vistos[codigo] = struct{}{}

		// el sistema anterior exporta precios con coma decimal
		precio, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, rec[3], err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("línea %d: stock %q inválido", line, rec[4])
		}
		filas = append(filas, fila{
			codigo:       codigo,
			codigoBarras: strings.TrimSpace(rec[1]),
			nombre:       strings.TrimSpace(rec[2]),
			precio:       precio,
			stock:        stock,
		})
	}
	return filas, nil
}

// escribirSQL emite upserts: re-ejecutar el script actualiza nombre y precio y fija el stock.
func escribirSQL(w io.Writer, sucursal string, filas []fila) error {
	var b strings.Builder
	b.WriteString("-- Productos y stock inicial de la sucursal " + sucursal + "\n")
	b.WriteString("-- Generado por cmd/seed_stock\n\n")
	for _, r := range filas {
		barras := "NULL"
		if r.codigoBarras != "" {
			barras = "'" + escapeSQL(r.codigoBarras) + "'"
		}
		fmt.Fprintf(&b, "INSERT INTO productos (sucursal_id, codigo, codigo_barras, nombre, precio)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', %s)\n", sucursal, escapeSQL(r.codigo), barras, escapeSQL(r.nombre), r.precio.StringFixed(2))
		b.WriteString("ON CONFLICT (sucursal_id, codigo) DO UPDATE SET nombre = EXCLUDED.nombre, precio = EXCLUDED.precio, codigo_barras = EXCLUDED.codigo_barras;\n")
		fmt.Fprintf(&b, "INSERT INTO stock (producto_id, sucursal_id, stock)\n")
		fmt.Fprintf(&b, "SELECT id, sucursal_id, %d FROM productos WHERE sucursal_id = '%s' AND codigo = '%s'\n", r.stock, sucursal, escapeSQL(r.codigo))
		b.WriteString("ON CONFLICT (producto_id, sucursal_id) DO UPDATE SET stock = EXCLUDED.stock, updated_at = now();\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
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

// Package seed genera el script SQL de los datos de referencia (salas, lotes mensuales y
// pallets) a partir del CSV que exporta la hoja de cálculo de la granja.
//
// Formato del CSV (con cabecera): sala;lote;pallet;bandejas
//
//	Sala 1;2026-01;PAL-001;10
//
// Los IDs son UUID v5 derivados del nombre/código, así que regenerar el script es idempotente.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

// Reference datos estáticos listos para insertar.
type Reference struct {
	Rooms       []entity.Room
	BatchMonths []entity.BatchMonth
	Pallets     []entity.Pallet
}

// RoomID ID estable de una sala por nombre.
func RoomID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("room:"+name)).String()
}

// BatchMonthID ID estable de un lote por código.
func BatchMonthID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("batch_month:"+code)).String()
}

// PalletID ID estable de un pallet por código.
func PalletID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("pallet:"+code)).String()
}

// NewBatchMonth construye el lote a partir de su código YYYY-MM (del día 1 al último del mes).
func NewBatchMonth(code string) (entity.BatchMonth, error) {
	start, err := time.Parse("2006-01", strings.TrimSpace(code))
	if err != nil {
		return entity.BatchMonth{}, fmt.Errorf("lote %q: formato esperado YYYY-MM", code)
	}
	return entity.BatchMonth{
		ID:        BatchMonthID(code),
		Code:      code,
		StartDate: start,
		EndDate:   start.AddDate(0, 1, -1),
	}, nil
}

// ReadCSV lee el CSV de pallets. charset "latin1"/"iso-8859-1" decodifica exportaciones de Excel.
func ReadCSV(r io.Reader, charset string) (*Reference, error) {
	switch strings.ToLower(charset) {
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "", "utf-8", "utf8":
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	rooms := map[string]entity.Room{}
	batches := map[string]entity.BatchMonth{}
	ref := &Reference{}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sala") {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperan 4 columnas", line)
		}
		roomName := strings.TrimSpace(rec[0])
		batchCode := strings.TrimSpace(rec[1])
		palletCode := strings.TrimSpace(rec[2])
		trays, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil || trays < 0 {
			return nil, fmt.Errorf("línea %d: bandejas inválidas %q", line, rec[3])
		}
		if roomName == "" || palletCode == "" {
			return nil, fmt.Errorf("línea %d: sala y pallet son obligatorios", line)
		}
		if _, ok := rooms[roomName]; !ok {
			rooms[roomName] = entity.Room{ID: RoomID(roomName), Name: roomName}
		}
		bm, ok := batches[batchCode]
		if !ok {
			if bm, err = NewBatchMonth(batchCode); err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			batches[batchCode] = bm
		}
		ref.Pallets = append(ref.Pallets, entity.Pallet{
			ID:           PalletID(palletCode),
			Code:         palletCode,
			RoomID:       rooms[roomName].ID,
			BatchMonthID: bm.ID,
			TrayCount:    trays,
		})
	}
	for _, r := range rooms {
		ref.Rooms = append(ref.Rooms, r)
	}
	for _, b := range batches {
		ref.BatchMonths = append(ref.BatchMonths, b)
	}
	sort.Slice(ref.Rooms, func(i, j int) bool { return ref.Rooms[i].Name < ref.Rooms[j].Name })
	sort.Slice(ref.BatchMonths, func(i, j int) bool { return ref.BatchMonths[i].Code < ref.BatchMonths[j].Code })
	return ref, nil
}

// Statements sentencias INSERT compatibles con PostgreSQL y SQLite (ON CONFLICT DO NOTHING).
func Statements(ref *Reference) []string {
	var out []string
	for _, r := range ref.Rooms {
		out = append(out, fmt.Sprintf(
			"INSERT INTO rooms (id, name) VALUES (%s, %s) ON CONFLICT DO NOTHING;",
			quote(r.ID), quote(r.Name)))
	}
	for _, b := range ref.BatchMonths {
		out = append(out, fmt.Sprintf(
			"INSERT INTO batch_months (id, code, start_date, end_date) VALUES (%s, %s, %s, %s) ON CONFLICT DO NOTHING;",
			quote(b.ID), quote(b.Code), quote(b.StartDate.Format("2006-01-02")), quote(b.EndDate.Format("2006-01-02"))))
	}
	for _, p := range ref.Pallets {
		out = append(out, fmt.Sprintf(
			"INSERT INTO pallets (id, code, room_id, batch_month_id, tray_count) VALUES (%s, %s, %s, %s, %d) ON CONFLICT DO NOTHING;",
			quote(p.ID), quote(p.Code), quote(p.RoomID), quote(p.BatchMonthID), p.TrayCount))
	}
	return out
}

// quote literal SQL con comillas simples escapadas.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

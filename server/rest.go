package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// tableOrder lists the planner tables in foreign-key dependency order.
var tableOrder = []string{"tags", "projects", "tasks", "events"}

// tableColumns restricts which columns a client may read or write.
var tableColumns = map[string][]string{
	"tags":     {"id", "name"},
	"projects": {"id", "name", "tag_id", "created_at", "updated_at"},
	"tasks":    {"id", "title", "notes", "status", "tag_id", "project_id", "parent_id", "has_time", "due_date", "start_ts", "end_ts"},
	"events":   {"id", "title", "start_ts", "end_ts", "status", "notes", "tag_id", "project_id"},
}

// boolColumns are stored as 0/1 but rendered as JSON booleans.
var boolColumns = map[string]bool{
	"has_time": true,
}

// joinable tables get tags(name) / projects(name) embedding.
var joinable = map[string]bool{
	"tasks":  true,
	"events": true,
}

func columnAllowed(table, col string) bool {
	for _, c := range tableColumns[table] {
		if c == col {
			return true
		}
	}
	return false
}

// handleSelect implements GET /rest/v1/<table> with the select, or and
// order parameters the client uses.
func (s *Server) handleSelect(c echo.Context, table string) error {
	sel := c.QueryParam("select")
	wantTagJoin := joinable[table] && strings.Contains(sel, "tags(name)")
	wantProjectJoin := joinable[table] && strings.Contains(sel, "projects(name)")

	cols := tableColumns[table]
	exprs := make([]string, len(cols))
	for i, col := range cols {
		exprs[i] = "t." + col
	}
	query := "SELECT " + strings.Join(exprs, ", ")
	if wantTagJoin {
		query += ", g.name AS tag_join_name"
	}
	if wantProjectJoin {
		query += ", p.name AS project_join_name"
	}
	query += " FROM " + table + " t"
	if wantTagJoin {
		query += " LEFT JOIN tags g ON g.id = t.tag_id"
	}
	if wantProjectJoin {
		query += " LEFT JOIN projects p ON p.id = t.project_id"
	}

	// The only disjunctive filter the client sends is the untimed-task
	// predicate; anything else is rejected rather than silently ignored.
	if or := c.QueryParam("or"); or != "" {
		if table == "tasks" && strings.Contains(or, "has_time") {
			query += " WHERE (t.has_time IS NULL OR t.has_time = 0)"
		} else {
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported or filter")
		}
	}

	if order := c.QueryParam("order"); order != "" {
		col, dir, ok := parseOrder(order)
		if !ok || !columnAllowed(table, col) {
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported order")
		}
		query += " ORDER BY t." + col + " " + dir
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer rows.Close()

	out := []map[string]interface{}{}
	names, err := rows.Columns()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for rows.Next() {
		values := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		row := map[string]interface{}{}
		for i, name := range names {
			v := coerceValue(values[i])
			switch name {
			case "tag_join_name":
				row["tags"] = embedName(v)
			case "project_join_name":
				row["projects"] = embedName(v)
			default:
				if boolColumns[name] {
					v = coerceBool(v)
				}
				row[name] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, out)
}

// handleUpsert implements POST /rest/v1/<table>?on_conflict=id with
// merge-duplicates semantics. The body is a JSON array of rows (a single
// object is also accepted).
func (s *Server) handleUpsert(c echo.Context, table string) error {
	if oc := c.QueryParam("on_conflict"); oc != "" && oc != "id" {
		return echo.NewHTTPError(http.StatusBadRequest, "only on_conflict=id is supported")
	}

	rows, err := decodeRows(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	for _, row := range rows {
		if err := s.upsertRow(table, row); err != nil {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
	}

	if strings.Contains(c.Request().Header.Get("Prefer"), "return=representation") {
		return c.JSON(http.StatusCreated, rows)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) upsertRow(table string, row map[string]interface{}) error {
	var cols []string
	var args []interface{}
	hasID := false
	for _, col := range tableColumns[table] {
		v, ok := row[col]
		if !ok {
			continue
		}
		if col == "id" {
			hasID = true
		}
		cols = append(cols, col)
		args = append(args, bindValue(v))
	}
	if !hasID {
		return fmt.Errorf("row for %s is missing an id", table)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	var sets []string
	for _, col := range cols {
		if col == "id" {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	query := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"
	if len(sets) > 0 {
		query += " ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
	} else {
		query += " ON CONFLICT (id) DO NOTHING"
	}

	_, err := s.db.Exec(s.rebind(query), args...)
	return err
}

// handleDelete implements DELETE /rest/v1/<table>?id=<op>.<value>. A
// filter is mandatory; an unfiltered delete is rejected the way PostgREST
// rejects it.
func (s *Server) handleDelete(c echo.Context, table string) error {
	filter := c.QueryParam("id")
	if filter == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "delete requires an id filter")
	}

	op, value, ok := strings.Cut(filter, ".")
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed id filter")
	}
	var cmp string
	switch op {
	case "eq":
		cmp = "="
	case "gt":
		cmp = ">"
	case "lt":
		cmp = "<"
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported id filter")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id filter value must be an integer")
	}

	if _, err := s.db.Exec(s.rebind("DELETE FROM "+table+" WHERE id "+cmp+" ?"), id); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func parseOrder(order string) (col, dir string, ok bool) {
	col, suffix, found := strings.Cut(order, ".")
	if !found {
		return "", "", false
	}
	switch suffix {
	case "asc":
		return col, "ASC", true
	case "desc":
		return col, "DESC", true
	default:
		return "", "", false
	}
}

// decodeRows parses an upsert body as either a JSON array of objects or a
// single object.
func decodeRows(r io.Reader) ([]map[string]interface{}, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		var rows []map[string]interface{}
		if err := unmarshalWithNumbers(raw, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]interface{}
	if err := unmarshalWithNumbers(raw, &row); err != nil {
		return nil, err
	}
	return []map[string]interface{}{row}, nil
}

func unmarshalWithNumbers(data []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// bindValue converts decoded JSON values into driver-friendly ones:
// integer ids stay int64 and booleans become 0/1 for the portable schema.
func bindValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

// coerceValue normalizes scanned values across drivers.
func coerceValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// coerceBool renders a stored 0/1 as a JSON boolean, keeping null null.
func coerceBool(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case int64:
		return val != 0
	case bool:
		return val
	default:
		return v
	}
}

// embedName wraps a joined name the way PostgREST renders an embedded
// resource: an object, or null when the foreign key is null.
func embedName(v interface{}) interface{} {
	name, ok := v.(string)
	if !ok {
		return nil
	}
	return map[string]string{"name": name}
}

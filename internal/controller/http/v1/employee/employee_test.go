package employee_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"orgdirectory/backend/foundation/web"
	employeec "orgdirectory/backend/internal/controller/http/v1/employee"
	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/repository/postgres/employee"
	"orgdirectory/backend/internal/service"
)

type fakeEmployees struct {
	lastFilter  employee.Filter
	lastUpdate  employee.UpdateRequest
	list        []entity.Employee
	managerErr  error
	subordinate error
}

func (f *fakeEmployees) GetList(_ context.Context, filter employee.Filter) ([]entity.Employee, error) {
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeEmployees) GetSubordinates(_ context.Context, id string) ([]entity.Employee, error) {
	if f.subordinate != nil {
		return nil, f.subordinate
	}
	return f.list, nil
}

func (f *fakeEmployees) GetReportingManager(_ context.Context, id string) (entity.Employee, error) {
	if f.managerErr != nil {
		return entity.Employee{}, f.managerErr
	}
	return f.list[0], nil
}

func (f *fakeEmployees) Create(_ context.Context, req employee.CreateRequest) (entity.Employee, error) {
	if req.CompanyCode != "A1" {
		return entity.Employee{}, web.NewRequestError(employee.ErrCompanyNotFound, http.StatusInternalServerError)
	}
	e := entity.Employee{Name: req.Name, Phone: req.Phone, CompanyCode: req.CompanyCode}
	e.ID = "e-1"
	return e, nil
}

func (f *fakeEmployees) UpdateColumns(_ context.Context, req employee.UpdateRequest) (entity.Employee, error) {
	f.lastUpdate = req
	return entity.Employee{}, web.NewRequestError(employee.ErrNotFound, http.StatusNotFound)
}

func (f *fakeEmployees) Delete(_ context.Context, id string) (entity.Employee, error) {
	e := entity.Employee{Name: "Bob"}
	e.ID = id
	return e, nil
}

func newApp(f *fakeEmployees) *web.App {
	gin.SetMode(gin.TestMode)
	c := employeec.NewController(f)

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app.Post("/employees", c.Create)
	app.Put("/employees/:id", c.UpdateColumns)
	app.Delete("/employees/:id", c.Delete)
	app.Get("/employees/search", c.Search)
	app.Get("/employees/export", c.Export)
	app.Get("/employees/:id/subordinates", c.GetSubordinates)
	app.Get("/employees/:id/manager", c.GetReportingManager)
	return app
}

func do(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestSearchBuildsTypedFilter(t *testing.T) {
	f := &fakeEmployees{list: []entity.Employee{}}
	app := newApp(f)

	rec := do(app, http.MethodGet, "/employees/search?name=oh&phone=555", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("search = %d %s", rec.Code, rec.Body.String())
	}
	if f.lastFilter.Name == nil || *f.lastFilter.Name != "oh" || f.lastFilter.Phone == nil || *f.lastFilter.Phone != "555" || f.lastFilter.ID != nil {
		t.Fatalf("filter = %+v", f.lastFilter)
	}

	do(app, http.MethodGet, "/employees/search", "")
	if f.lastFilter != (employee.Filter{}) {
		t.Fatalf("empty query produced filter %+v", f.lastFilter)
	}

	do(app, http.MethodGet, "/employees/search?name=%20", "")
	if f.lastFilter.Name == nil || *f.lastFilter.Name != " " {
		t.Fatalf("blank name dropped: %+v", f.lastFilter)
	}
}

func TestCreateEmployee(t *testing.T) {
	app := newApp(&fakeEmployees{})

	rec := do(app, http.MethodPost, "/employees", `{"name":"Bob","phone":"555","companyCode":"A1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(app, http.MethodPost, "/employees", `{"name":"Bob","phone":"555","companyCode":"ZZ"}`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Company does not exist") {
		t.Fatalf("missing company = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(app, http.MethodPost, "/employees", `{"name":"Bob","companyCode":"A1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing phone = %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateWithoutBodyIsEmptyUpdate(t *testing.T) {
	f := &fakeEmployees{}
	app := newApp(f)

	rec := do(app, http.MethodPut, "/employees/e-9", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update = %d %s", rec.Code, rec.Body.String())
	}
	if f.lastUpdate.ID != "e-9" || f.lastUpdate.Name != nil || f.lastUpdate.Phone != nil {
		t.Fatalf("update request = %+v", f.lastUpdate)
	}
}

func TestUpdateUsesPathID(t *testing.T) {
	f := &fakeEmployees{}
	app := newApp(f)

	rec := do(app, http.MethodPut, "/employees/e-9", `{"name":"New"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update = %d %s", rec.Code, rec.Body.String())
	}
	if f.lastUpdate.ID != "e-9" || f.lastUpdate.Name == nil || *f.lastUpdate.Name != "New" || f.lastUpdate.Phone != nil {
		t.Fatalf("update request = %+v", f.lastUpdate)
	}
}

func TestRelationshipEnvelopes(t *testing.T) {
	boss := entity.Employee{Name: "Boss"}
	boss.ID = "boss"
	f := &fakeEmployees{list: []entity.Employee{boss}}
	app := newApp(f)

	rec := do(app, http.MethodGet, "/employees/x/subordinates", "")
	var subs struct {
		Subordinates []entity.Employee `json:"subordinates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil || len(subs.Subordinates) != 1 {
		t.Fatalf("subordinates = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(app, http.MethodGet, "/employees/x/manager", "")
	var mgr struct {
		Manager entity.Employee `json:"manager"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &mgr); err != nil || mgr.Manager.ID != "boss" {
		t.Fatalf("manager = %d %s", rec.Code, rec.Body.String())
	}

	f.subordinate = web.NewRequestError(employee.ErrNoSubordinates, http.StatusNotFound)
	f.managerErr = web.NewRequestError(employee.ErrManagerMismatched, http.StatusNotFound)

	rec = do(app, http.MethodGet, "/employees/x/subordinates", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No subordinates found") {
		t.Fatalf("no subordinates = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(app, http.MethodGet, "/employees/x/manager", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "companyCode mismatch") {
		t.Fatalf("no manager = %d %s", rec.Code, rec.Body.String())
	}
}

func TestExport(t *testing.T) {
	bob := entity.Employee{Name: "Bob", Phone: "555", CompanyCode: "A1"}
	bob.ID = "e-1"
	f := &fakeEmployees{list: []entity.Employee{bob}}
	app := newApp(f)

	rec := do(app, http.MethodGet, "/employees/export?name=bo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != service.ExcelContentType {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;") {
		t.Fatalf("content disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	// xlsx files are zip archives.
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Fatal("body is not an xlsx archive")
	}
	if f.lastFilter.Name == nil || *f.lastFilter.Name != "bo" {
		t.Fatalf("filter = %+v", f.lastFilter)
	}
}

func TestDeleteReturnsRecord(t *testing.T) {
	app := newApp(&fakeEmployees{})

	rec := do(app, http.MethodDelete, "/employees/e-3", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":"e-3"`) {
		t.Fatalf("delete = %d %s", rec.Code, rec.Body.String())
	}
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffbook/internal/app/server"
	"staffbook/internal/domain/auth"
	"staffbook/internal/domain/employee"
	"staffbook/internal/platform/metrics"
	"staffbook/internal/transport/http/middleware"
)

// memStore is an in-memory StoreAPI so journeys run without MongoDB. List
// applies only the admin exclusion; filter semantics live in the employee
// package and are tested there.
type memStore struct {
	records map[primitive.ObjectID]employee.Employee
}

func newMemStore() *memStore {
	return &memStore{records: map[primitive.ObjectID]employee.Employee{}}
}

func (m *memStore) add(emp employee.Employee) primitive.ObjectID {
	if emp.ID.IsZero() {
		emp.ID = primitive.NewObjectID()
	}
	m.records[emp.ID] = emp
	return emp.ID
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*employee.Employee, error) {
	emp, ok := m.records[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return &emp, nil
}

func (m *memStore) FindByRef(ctx context.Context, ref string) (*employee.Employee, error) {
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		return m.FindByID(ctx, id)
	}
	return m.FindByEmployeeID(ctx, ref)
}

func (m *memStore) FindByEmployeeID(_ context.Context, employeeID string) (*employee.Employee, error) {
	for _, emp := range m.records {
		if emp.EmployeeID == employeeID {
			found := emp
			return &found, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (m *memStore) FindByPhone(_ context.Context, phone string) (*employee.Employee, error) {
	for _, emp := range m.records {
		if emp.Phone == phone {
			found := emp
			return &found, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (m *memStore) FindAdmin(_ context.Context) (*employee.Employee, error) {
	for _, emp := range m.records {
		if emp.Role == employee.RoleAdmin {
			found := emp
			return &found, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (m *memStore) List(_ context.Context, _ bson.M) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, emp := range m.records {
		if emp.Role != employee.RoleAdmin {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memStore) PhoneExists(ctx context.Context, phone string) (bool, error) {
	_, err := m.FindByPhone(ctx, phone)
	if errors.Is(err, employee.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memStore) EmployeeIDTaken(_ context.Context, employeeID string, exclude primitive.ObjectID) (bool, error) {
	for id, emp := range m.records {
		if emp.EmployeeID == employeeID && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Insert(_ context.Context, emp employee.Employee) (primitive.ObjectID, error) {
	return m.add(emp), nil
}

func (m *memStore) UpdateProfile(_ context.Context, id primitive.ObjectID, emp employee.Employee, markCompleted bool) error {
	current, ok := m.records[id]
	if !ok {
		return employee.ErrNotFound
	}
	emp.ID = id
	emp.Password = current.Password
	emp.Role = current.Role
	if !markCompleted {
		emp.DetailsCompleted = current.DetailsCompleted
	}
	m.records[id] = emp
	return nil
}

func (m *memStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	emp, ok := m.records[id]
	if !ok {
		return employee.ErrNotFound
	}
	emp.Password = passwordHash
	m.records[id] = emp
	return nil
}

func (m *memStore) UpdatePasswordByEmployeeID(ctx context.Context, employeeID, passwordHash string) error {
	emp, err := m.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	return m.UpdatePassword(ctx, emp.ID, passwordHash)
}

func (m *memStore) DeleteByEmployeeID(_ context.Context, employeeID string) (int64, error) {
	for id, emp := range m.records {
		if emp.EmployeeID == employeeID && emp.Role != employee.RoleAdmin {
			delete(m.records, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error) {
	var deleted int64
	for _, employeeID := range employeeIDs {
		n, _ := m.DeleteByEmployeeID(ctx, employeeID)
		deleted += n
	}
	return deleted, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(t *testing.T) (*httptest.Server, *http.Client, *memStore) {
	t.Helper()

	store := newMemStore()
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatal(err)
	}
	store.add(employee.Employee{
		EmployeeID:       employee.RoleAdmin,
		Name:             employee.RoleAdmin,
		Phone:            "0000000000",
		Password:         hash,
		Role:             employee.RoleAdmin,
		DetailsCompleted: true,
	})

	router := server.NewRouter(server.Deps{
		Service:       employee.NewService(store),
		Collector:     metrics.New(),
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		MaxBodyBytes:  1 << 20,
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Jar: jar}

	// Prime the CSRF cookie for the anonymous register/login forms.
	resp, err := client.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	return ts, client, store
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatal(err)
	}
	for _, cookie := range client.Jar.Cookies(u) {
		if cookie.Name == middleware.CSRFCookie {
			return cookie.Value
		}
	}
	t.Fatal("no CSRF cookie in jar")
	return ""
}

func doJSON(t *testing.T, client *http.Client, method, rawURL string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, rawURL, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		base := req.URL.Scheme + "://" + req.URL.Host
		req.Header.Set(middleware.CSRFHeader, csrfToken(t, client, base))
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func dataMessage(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data.Message
}

func marriedProfile() map[string]any {
	return map[string]any{
		"employeeId":    "EMP001",
		"name":          "Ramesh",
		"phone":         "9876543210",
		"email":         "ramesh@example.com",
		"designation":   "Engineer",
		"department":    "Platform",
		"gender":        "Male",
		"dob":           "1988-02-14",
		"maritalStatus": "married",
		"dateOfJoining": "2015-06-01",
		"spouseName":    "Asha",
		"spouseDob":     "1990-05-20",
		"spouseGender":  "Female",
		"totalChildren": "1",
		"children": []map[string]string{
			{"name": "Ravi", "dateOfBirth": "2020-01-05", "gender": "Male"},
		},
	}
}

func TestRegisterProfileAndAdminJourney(t *testing.T) {
	ts, client, store := newTestApp(t)

	// Self-service registration starts a session pointing at the profile
	// form.
	resp, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Ramesh",
		"phone":    "9876543210",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated || !env.Success {
		t.Fatalf("register: status %d env %+v", resp.StatusCode, env)
	}
	if msg := dataMessage(t, env); msg != "Registration successful." {
		t.Fatalf("register message %q", msg)
	}

	resp, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/profile", marriedProfile())
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("profile: status %d env %+v", resp.StatusCode, env)
	}

	// Once submitted the profile is locked for the employee.
	resp, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/profile", marriedProfile())
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("resubmission: status %d env %+v", resp.StatusCode, env)
	}

	resp, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employee", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self detail: status %d env %+v", resp.StatusCode, env)
	}
	var detail struct {
		Employee employee.Employee `json:"employee"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Employee.Spouse.Name != "Asha" || len(detail.Employee.Children) != 1 {
		t.Fatalf("normalized detail: %+v", detail.Employee)
	}

	// Switch to the admin session.
	resp, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", map[string]string{
		"role":     "admin",
		"passcode": "admin123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d env %+v", resp.StatusCode, env)
	}

	resp, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees?search=EMP001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("directory: status %d env %+v", resp.StatusCode, env)
	}
	var directory struct {
		Employees []employee.Employee `json:"employees"`
	}
	if err := json.Unmarshal(env.Data, &directory); err != nil {
		t.Fatal(err)
	}
	if len(directory.Employees) != 1 || directory.Employees[0].EmployeeID != "EMP001" {
		t.Fatalf("directory listing: %+v", directory.Employees)
	}

	exportBody, err := json.Marshal(map[string]any{"type": "csv"})
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/export", bytes.NewReader(exportBody))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CSRFHeader, csrfToken(t, client, ts.URL))
	exportResp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		t.Fatalf("export: status %d", exportResp.StatusCode)
	}
	if ct := exportResp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("export content type %q", ct)
	}
	exported, err := io.ReadAll(exportResp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(exported), "Sr. No,Employee Code") {
		t.Fatalf("export header: %q", string(exported))
	}
	if !strings.Contains(string(exported), "Asha") {
		t.Fatal("export missing dependent row")
	}

	resp, env = doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/employees/EMP001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d env %+v", resp.StatusCode, env)
	}
	if msg := dataMessage(t, env); msg != "Employee EMP001 deleted." {
		t.Fatalf("delete message %q", msg)
	}
	if _, err := store.FindByEmployeeID(context.Background(), "EMP001"); !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("record still present: %v", err)
	}
}

func TestAdminRoutesRejectEmployeeSession(t *testing.T) {
	ts, client, _ := newTestApp(t)

	if _, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/register", map[string]string{
		"name":     "Suresh",
		"phone":    "1112223334",
		"password": "secret123",
	}); !env.Success {
		t.Fatalf("register failed: %+v", env)
	}

	resp, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status %d env %+v", resp.StatusCode, env)
	}
	if env.Error == nil || env.Error.Message != "Unauthorized access." {
		t.Fatalf("error %+v", env.Error)
	}
}

func TestMutationsRequireCSRFToken(t *testing.T) {
	ts, client, _ := newTestApp(t)

	body := bytes.NewReader([]byte(`{"name":"x","phone":"1112223334","password":"pw"}`))
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/auth/register", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestDashboardRoutesByRole(t *testing.T) {
	ts, client, _ := newTestApp(t)

	_, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/dashboard", nil)
	var anon struct {
		Next string `json:"next"`
	}
	if err := json.Unmarshal(env.Data, &anon); err != nil {
		t.Fatal(err)
	}
	if anon.Next != "login" {
		t.Fatalf("anonymous next %q", anon.Next)
	}

	if _, env := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/login", map[string]string{
		"role":     "admin",
		"passcode": "admin123",
	}); !env.Success {
		t.Fatalf("admin login failed: %+v", env)
	}

	_, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/dashboard", nil)
	var admin struct {
		Next string `json:"next"`
	}
	if err := json.Unmarshal(env.Data, &admin); err != nil {
		t.Fatal(err)
	}
	if admin.Next != "admin_dashboard" {
		t.Fatalf("admin next %q", admin.Next)
	}
}

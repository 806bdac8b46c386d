package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"costmanager/models"
	"costmanager/store"
	"costmanager/utils"
)

// In-memory store fakes so handler behavior can be exercised without a
// running MongoDB.

type memCostStore struct {
	costs []models.Cost
}

func (s *memCostStore) List(ctx context.Context) ([]models.Cost, error) {
	return append([]models.Cost{}, s.costs...), nil
}

func (s *memCostStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Cost, error) {
	for _, c := range s.costs {
		if c.ID == id {
			cost := c
			return &cost, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memCostStore) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cost, error) {
	byID := map[primitive.ObjectID]models.Cost{}
	for _, id := range ids {
		for _, c := range s.costs {
			if c.ID == id {
				byID[id] = c
			}
		}
	}
	return byID, nil
}

func (s *memCostStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range s.costs {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memCostStore) Create(ctx context.Context, cost models.Cost) error {
	s.costs = append(s.costs, cost)
	return nil
}

func (s *memCostStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Cost, error) {
	for i := range s.costs {
		if s.costs[i].ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "name":
				s.costs[i].Name = value.(string)
			case "category":
				s.costs[i].Category = value.(string)
			case "cost_type":
				s.costs[i].CostType = value.(string)
			case "value":
				s.costs[i].Value = value.(float64)
			case "currency":
				s.costs[i].Currency = value.(string)
			case "unit":
				s.costs[i].Unit = value.(string)
			case "imageUrl":
				s.costs[i].ImageURL = value.(string)
			}
		}
		cost := s.costs[i]
		return &cost, nil
	}
	return nil, store.ErrNotFound
}

func (s *memCostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.costs {
		if s.costs[i].ID == id {
			s.costs = append(s.costs[:i], s.costs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memProductStore struct {
	products []models.Product
}

func (s *memProductStore) List(ctx context.Context) ([]models.Product, error) {
	return append([]models.Product{}, s.products...), nil
}

func (s *memProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			product := p
			product.Costs = append([]models.CostLine{}, p.Costs...)
			return &product, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memProductStore) Create(ctx context.Context, product models.Product) error {
	s.products = append(s.products, product)
	return nil
}

func (s *memProductStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "name":
				s.products[i].Name = value.(string)
			case "base_quantity":
				s.products[i].BaseQuantity = value.(float64)
			case "unit_total_cost":
				s.products[i].UnitTotalCost = value.(float64)
			case "unit_price":
				s.products[i].UnitPrice = value.(float64)
			case "imageUrl":
				s.products[i].ImageURL = value.(string)
			case "costs":
				s.products[i].Costs = value.([]models.CostLine)
			}
		}
		product := s.products[i]
		return &product, nil
	}
	return nil, store.ErrNotFound
}

func (s *memProductStore) Replace(ctx context.Context, product models.Product) error {
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memProductStore) FindByCost(ctx context.Context, costID primitive.ObjectID) ([]models.Product, error) {
	matches := []models.Product{}
	for _, p := range s.products {
		for _, line := range p.Costs {
			if line.Cost == costID {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches, nil
}

type memUserStore struct {
	users []models.User
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) Create(ctx context.Context, user models.User) error {
	s.users = append(s.users, user)
	return nil
}

func newTestHandler() (*Handler, *memCostStore, *memProductStore) {
	costs := &memCostStore{}
	products := &memProductStore{}
	return &Handler{
		Costs:        costs,
		Products:     products,
		Users:        &memUserStore{},
		TokenSecret:  "test-secret",
		ResponseHdlr: NewResponseHandler(),
		ErrorHdlr:    utils.NewErrorHandler(),
	}, costs, products
}

func doRequest(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// decodeData unwraps the response envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}

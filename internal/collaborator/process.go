package collaborator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// OrderLine is one entry of the items variable sent to the orchestrator.
type OrderLine struct {
	ProductID domain.ID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type OrderRequest struct {
	Items    []OrderLine
	Customer domain.Customer
}

// ProcessInstance is the started fulfillment process. ID is the order
// reference; it may be empty when the orchestrator omitted it.
type ProcessInstance struct {
	ID string
}

// processVariable carries a value as JSON text, the orchestrator's variable
// convention. The payload is serialized twice on purpose.
type processVariable struct {
	Value string `json:"value"`
}

type startProcessVariables struct {
	Items    processVariable `json:"items"`
	Customer processVariable `json:"customer"`
}

type startProcessRequest struct {
	Variables startProcessVariables `json:"variables"`
}

type startProcessResponse struct {
	ID      domain.ID `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
}

// BuildStartProcessBody renders the request body for order creation.
func BuildStartProcessBody(order OrderRequest) ([]byte, error) {
	items := order.Items
	if items == nil {
		items = []OrderLine{}
	}
	itemsJSON, err := encodeJSON(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	customerJSON, err := encodeJSON(order.Customer)
	if err != nil {
		return nil, fmt.Errorf("encode customer: %w", err)
	}
	return encodeJSON(startProcessRequest{
		Variables: startProcessVariables{
			Items:    processVariable{Value: string(itemsJSON)},
			Customer: processVariable{Value: string(customerJSON)},
		},
	})
}

// CreateOrder starts the order delivery process. Any non-2xx status is a
// failure whatever the body says. A 2xx with an empty body, or a body without
// an id, is still a success with an empty reference.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (ProcessInstance, error) {
	const op = "start process"

	body, err := BuildStartProcessBody(order)
	if err != nil {
		return ProcessInstance{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.do(ctx, op, http.MethodPost, startProcessPath, body)
	if err != nil {
		return ProcessInstance{}, err
	}
	if !res.ok() {
		return ProcessInstance{}, applicationError(op, res.status, "Failed to start process", nil)
	}
	if isBlank(res.body) {
		return ProcessInstance{}, nil
	}

	var started startProcessResponse
	if err := json.Unmarshal(res.body, &started); err != nil {
		return ProcessInstance{}, applicationError(op, res.status, "Failed to start process", fmt.Errorf("decode response: %w", err))
	}
	if started.ID.IsZero() && started.Type != "" {
		return ProcessInstance{}, applicationError(op, res.status, "Failed to start process", fmt.Errorf("%s: %s", started.Type, started.Message))
	}
	return ProcessInstance{ID: started.ID.String()}, nil
}

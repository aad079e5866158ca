package gateway

import (
	"context"
	"net/url"
)

// Vehicles lists a customer's registered vehicles.
// An empty list with a nil error means the customer has none.
func (c *Client) Vehicles(ctx context.Context, customerID, token string) ([]Vehicle, error) {
	var vehicles []Vehicle
	path := "/api/vehicles/customer/" + url.PathEscape(customerID)
	if err := c.getJSON(ctx, "vehicle-service", c.vehicle, path, nil, token, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SearchVehicles queries vehicles by registration number, make, or model.
// Empty criteria are omitted from the query.
func (c *Client) SearchVehicles(ctx context.Context, registration, vehicleMake, vehicleModel, token string) ([]Vehicle, error) {
	q := url.Values{}
	if registration != "" {
		q.Set("registrationNumber", registration)
	}
	if vehicleMake != "" {
		q.Set("make", vehicleMake)
	}
	if vehicleModel != "" {
		q.Set("model", vehicleModel)
	}

	var vehicles []Vehicle
	if err := c.getJSON(ctx, "vehicle-service", c.vehicle, "/api/vehicles/search", q, token, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

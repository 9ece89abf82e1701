package adsclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	adsdomain "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/domain"
)

const customerResourcePrefix = "customers/"

func (c *GoogleAdsClient) ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error) {
	url := fmt.Sprintf("%s/customers:listAccessibleCustomers", c.cfg.GoogleAds.URL)

	body, err := c.do(ctx, "googleads.list_accessible_customers", http.MethodGet, url, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var response adsdomain.ListAccessibleCustomersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("googleads: decode accessible customers: %w", err)
	}

	ids := make([]string, 0, len(response.ResourceNames))
	for _, name := range response.ResourceNames {
		ids = append(ids, strings.TrimPrefix(name, customerResourcePrefix))
	}

	return ids, nil
}

package adsclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/domain"
)

// maxSearchPages limita a paginação caso a API devolva sempre um nextPageToken
const maxSearchPages = 100

func (c *GoogleAdsClient) Search(ctx context.Context, accessToken, customerID, query string) ([]adsdomain.Row, error) {
	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.cfg.GoogleAds.URL, customerID)

	rows := make([]adsdomain.Row, 0)
	request := adsdomain.SearchRequest{Query: query}

	for page := 0; page < maxSearchPages; page++ {
		body, err := c.do(ctx, "googleads.search", http.MethodPost, url, accessToken, request)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": customerID,
				"page":        page,
				"error":       err.Error(),
			}).Error("googleads: search failed")
			return nil, err
		}

		var response adsdomain.SearchResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("googleads: decode search response: %w", err)
		}

		rows = append(rows, response.Results...)

		if response.NextPageToken == "" {
			break
		}
		request.PageToken = response.NextPageToken
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"rows":        len(rows),
	}).Debug("googleads: search completed")

	return rows, nil
}

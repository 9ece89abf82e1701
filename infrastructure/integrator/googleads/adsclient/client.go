package adsclient

//go:generate mockgen -source=client.go -destination=../mocks/adsclient_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/pkg/retry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultRequestTimeout = 30 * time.Second

type Client interface {
	// Search percorre todas as páginas da query e devolve as linhas concatenadas
	Search(ctx context.Context, accessToken, customerID, query string) ([]adsdomain.Row, error)
	// ListAccessibleCustomers devolve os IDs (só dígitos) das contas visíveis ao token
	ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error)
}

type GoogleAdsClient struct {
	httpClient *http.Client
	cfg        *config.Config
	policy     retry.Policy
}

func NewClient(cfg *config.Config, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &GoogleAdsClient{
		httpClient: httpClient,
		cfg:        cfg,
		policy: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
			MaxDelay:    cfg.Retry.MaxDelay,
			ShouldRetry: ShouldRetry,
		},
	}
}

// WithPolicy troca a política de retry; usado em testes para zerar os atrasos
func (c *GoogleAdsClient) WithPolicy(policy retry.Policy) *GoogleAdsClient {
	c.policy = policy
	return c
}

// APIError é um erro devolvido pela API com o envelope de erro padrão
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string

	unauthorized bool
	retryable    bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google ads api error (http %d, %s): %s", e.HTTPStatus, e.Status, e.Message)
}

func (e *APIError) Unauthorized() bool { return e.unauthorized }

func (e *APIError) Retryable() bool { return e.retryable }

// IsRetryable reconhece DEADLINE_EXCEEDED, UNAVAILABLE e afins. Complementa retry.IsTransient.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.retryable
}

// ShouldRetry é o predicado do cliente. Um *APIError já foi classificado pelo status
// remoto e nunca passa pelo casamento de texto de retry.IsTransient.
var ShouldRetry = retry.Unless(retry.Any(retry.IsTransient, IsRetryable), isFatalAPIError)

func isFatalAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && !apiErr.retryable
}

// IsUnauthorized indica token recusado ou conta sem permissão
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.unauthorized
}

func (c *GoogleAdsClient) requestTimeout() time.Duration {
	if c.cfg.GoogleAds.RequestTimeout > 0 {
		return c.cfg.GoogleAds.RequestTimeout
	}
	return defaultRequestTimeout
}

// do executa uma requisição com timeout fixo por tentativa, repetindo conforme a política
func (c *GoogleAdsClient) do(ctx context.Context, operation, method, url, accessToken string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	return retry.Do(ctx, c.policy.Named(operation), func(ctx context.Context) ([]byte, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.requestTimeout())
		defer cancel()

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(attemptCtx, method, url, reader)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("developer-token", c.cfg.GoogleAds.DeveloperToken)
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.GoogleAds.LoginCustomerID != "" {
			req.Header.Set("login-customer-id", c.cfg.GoogleAds.LoginCustomerID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		return handleResponse(resp)
	})
}

// handleResponse lê o corpo e converte respostas de erro em *APIError
func handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{HTTPStatus: resp.StatusCode, Message: string(body)}

	var errorResponse adsdomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error.Status != "" {
		apiErr.Status = errorResponse.Error.Status
		apiErr.Message = errorResponse.Error.Message
		apiErr.unauthorized = errorResponse.IsUnauthorized()
		apiErr.retryable = errorResponse.IsRetryable()
	} else {
		apiErr.unauthorized = resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden
		apiErr.retryable = resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout
	}

	logrus.WithFields(logrus.Fields{
		"http_status": resp.StatusCode,
		"status":      apiErr.Status,
		"retryable":   apiErr.retryable,
	}).Warn("googleads: request failed")

	return nil, apiErr
}

package clinicstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/storeapi"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// maxErrorBody сколько байт тела ответа попадает в текст ошибки
const maxErrorBody = 512

// Client клиент внешнего хранилища клиники
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента хранилища
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetWorkDays получает дни недели, в которые врач принимает
func (c *Client) GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	var resp storeapi.WorkDaysResponse
	if err := c.do(ctx, http.MethodGet, c.path(storeapi.PathWorkDays, practitionerID), nil, http.StatusOK, &resp); err != nil {
		return 0, err
	}
	return resp.WorkDays, nil
}

// GetAvailability получает свободные и занятые слоты врача на дату
func (c *Client) GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error) {
	query := url.Values{}
	query.Set("date", date.String())
	endpoint := c.path(storeapi.PathAvailability, practitionerID) + "?" + query.Encode()

	var resp storeapi.AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.SlotSets(), nil
}

// GetService получает услугу каталога
func (c *Client) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	var resp storeapi.ServiceResponse
	if err := c.do(ctx, http.MethodGet, c.path(storeapi.PathService, serviceID), nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// CommitBooking фиксирует запись.
// Занятый слот (409) возвращает domain.ErrSlotTaken
func (c *Client) CommitBooking(ctx context.Context, commit domain.BookingCommit) (*domain.BookingReference, error) {
	c.log.Info("Committing %s booking practitioner=%d date=%s time=%s",
		commit.Kind, commit.PractitionerID, commit.Date, commit.Time)

	var resp storeapi.CommitResponse
	err := c.do(ctx, http.MethodPost, c.baseURL+storeapi.PathCommit, storeapi.FromDomainCommit(commit), http.StatusCreated, &resp)
	if err != nil {
		return nil, err
	}

	return &domain.BookingReference{ID: resp.ID, Kind: domain.BookingKind(resp.Kind)}, nil
}

func (c *Client) path(pattern string, id int64) string {
	return c.baseURL + strings.Replace(pattern, "{id}", strconv.FormatInt(id, 10), 1)
}

// do выполняет запрос и декодирует ответ с ожидаемым статусом
func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}, wantStatus int, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case wantStatus:
		// Продолжаем обработку
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, endpoint)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrSlotTaken, readSnippet(resp.Body))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, readSnippet(resp.Body))
	default:
		c.log.Warn("Clinic store answered %d on %s %s", resp.StatusCode, method, endpoint)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readSnippet(resp.Body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func readSnippet(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(data))
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yourusername/todo-api/internal/config"
	"github.com/yourusername/todo-api/internal/domain/entity"
	"github.com/yourusername/todo-api/internal/domain/repository"
	"github.com/yourusername/todo-api/pkg/auth"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// CallbackParams — параметры query из колбэка провайдера
type CallbackParams struct {
	Code  string
	Error string
}

// GoogleOAuthService проводит authorization-code flow с Google и превращает
// внешний профиль в локального пользователя с выданным JWT.
// Конфигурация oauth2.Config неизменяема после создания: токены провайдера
// передаются явно по цепочке вызовов, общего изменяемого состояния нет.
type GoogleOAuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	oauthConfig *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleOAuthService создает новый OAuth-сервис
func NewGoogleOAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	cfg config.GoogleConfig,
) (*GoogleOAuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	return &GoogleOAuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
		},
		userInfoURL: defaultUserInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// AuthURL строит URL авторизации провайдера.
// Без состояния и без побочных эффектов, вызов идемпотентен.
func (s *GoogleOAuthService) AuthURL() string {
	return s.oauthConfig.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// CompleteLogin завершает authorization-code flow: меняет код на токены
// провайдера, получает профиль, делает upsert пользователя и выдает JWT.
// Каждая фаза — один сетевой вызов без ретраев: при сбое пользователь
// начинает весь поток заново с AuthURL.
func (s *GoogleOAuthService) CompleteLogin(ctx context.Context, params CallbackParams) (string, error) {
	if params.Error != "" {
		log.Printf("[GoogleOAuth] Провайдер вернул ошибку: %s", params.Error)
		return "", &ProviderDeniedError{Code: params.Error}
	}
	if strings.TrimSpace(params.Code) == "" {
		log.Printf("[GoogleOAuth] Колбэк без кода авторизации")
		return "", ErrNoCode
	}

	// Обмен кода на токены провайдера. Сбой здесь — проблема провайдера
	// или сети, в отличие от no_code (ошибки клиента); коды различимы в логах.
	token, err := s.exchangeCode(ctx, params.Code)
	if err != nil {
		log.Printf("[GoogleOAuth] Обмен кода на токены не удался: %v", err)
		return "", fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		log.Printf("[GoogleOAuth] Не удалось получить профиль пользователя: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}

	if info.Email == "" {
		log.Printf("[GoogleOAuth] В профиле Google отсутствует email")
		return "", ErrNoEmail
	}

	role := classifyRole(info.Email)
	log.Printf("[GoogleOAuth] Пользователь %s классифицирован как %s", info.Email, role)

	user := &entity.User{
		Email: info.Email,
		Name:  info.Name,
		Role:  role,
	}
	if user.Name == "" {
		// Имя по умолчанию — локальная часть email
		user.Name = strings.Split(info.Email, "@")[0]
	}
	if info.Picture != "" {
		picture := info.Picture
		user.Picture = &picture
	}

	// Атомарный upsert: при конфликте по email обновляются только name и
	// picture, роль и дата создания остаются прежними. Роль, вычисленная
	// выше, применяется только при создании новой записи.
	if err := s.userRepo.Upsert(user); err != nil {
		log.Printf("[GoogleOAuth] Ошибка БД при upsert пользователя %s: %v", info.Email, err)
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	log.Printf("[GoogleOAuth] Вход пользователя ID=%s (%s), роль %s", user.ID, user.Email, user.Role)

	signed, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return signed, nil
}

// exchangeCode меняет авторизационный код на токены провайдера
func (s *GoogleOAuthService) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	// Подкладываем клиент с таймаутом в контекст обмена
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return s.oauthConfig.Exchange(ctx, code)
}

// googleUserInfo — профиль пользователя из userinfo endpoint
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// fetchUserInfo получает внешний профиль, используя токен провайдера
func (s *GoogleOAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("userinfo status=%d body=%s", resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}

	info.Email = strings.TrimSpace(info.Email)
	info.Name = strings.TrimSpace(info.Name)
	info.Picture = strings.TrimSpace(info.Picture)
	return &info, nil
}

// classifyRole определяет роль по email при создании пользователя.
// Подстрока "admin" или домен @admin.com дают ADMIN — слабый и угадываемый
// признак, сохранен намеренно для совместимости (см. DESIGN.md).
// На уже существующих пользователей не влияет: роль при повторном входе
// не пересчитывается.
func classifyRole(email string) string {
	if strings.Contains(email, "admin") || strings.HasSuffix(email, "@admin.com") {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

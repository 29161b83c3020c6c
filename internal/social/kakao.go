package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// KakaoUserInfo is the subset of the Kakao profile the service needs.
type KakaoUserInfo struct {
	ID           string
	Email        string
	Nickname     string
	ProfileImage string
}

// KakaoClient fetches user profiles from the Kakao user-info endpoint
// using a provider-issued access token.
type KakaoClient struct {
	httpClient  *http.Client
	userInfoURL string
}

func NewKakaoClient(userInfoURL string) *KakaoClient {
	return &KakaoClient{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userInfoURL: userInfoURL,
	}
}

type kakaoUserResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// GetUserInfo exchanges a Kakao access token for the user profile.
func (c *KakaoClient) GetUserInfo(ctx context.Context, accessToken string) (*KakaoUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build kakao request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao returned status %d", resp.StatusCode)
	}

	var body kakaoUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode kakao response: %w", err)
	}
	if body.ID == 0 {
		return nil, fmt.Errorf("kakao response is missing the user id")
	}

	return &KakaoUserInfo{
		ID:           strconv.FormatInt(body.ID, 10),
		Email:        body.KakaoAccount.Email,
		Nickname:     body.KakaoAccount.Profile.Nickname,
		ProfileImage: body.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}

package common

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// HTTPClientConfig HTTP 客户端配置
type HTTPClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	ProxyString string // 格式: host:port 或 host:port:user:pass 或 host:port:user:pass:socks5
}

// HTTPClient HTTP 客户端
// 不做内部重试: 瞬时网络错误原样抛给调用方, 退避策略由调用方决定
type HTTPClient struct {
	Client  *http.Client
	BaseURL string
}

// NewHTTPClient 创建 HTTP 客户端
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: false},
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// 配置代理
	if cfg.ProxyString != "" {
		configureProxy(transport, cfg.ProxyString)
	}

	return &HTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		BaseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// configureProxy 配置代理
func configureProxy(transport *http.Transport, proxyString string) {
	parts := strings.Split(proxyString, ":")
	if len(parts) < 2 {
		return
	}

	host := parts[0]
	port := parts[1]

	proxyType := "http"
	var username, password string

	if len(parts) >= 4 {
		username = parts[2]
		password = parts[3]
		if len(parts) >= 5 {
			proxyType = strings.ToLower(parts[4])
		}
	}

	if strings.HasPrefix(proxyType, "socks") {
		// SOCKS5 代理
		var auth *proxy.Auth
		if username != "" && password != "" {
			auth = &proxy.Auth{User: username, Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("%s:%s", host, port), auth, proxy.Direct)
		if err == nil {
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	} else {
		// HTTP/HTTPS 代理
		proxyURL := &url.URL{
			Scheme: "http",
			Host:   fmt.Sprintf("%s:%s", host, port),
		}
		if username != "" && password != "" {
			proxyURL.User = url.UserPassword(username, password)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
}

// Get 发送 GET 请求
func (c *HTTPClient) Get(ctx context.Context, path string, params interface{}) ([]byte, error) {
	urlStr := c.BaseURL + path
	if params != nil {
		query := BuildQuery(params)
		if query != "" {
			urlStr += "?" + query
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// GetJSON 发送 GET 请求并解析 JSON
func (c *HTTPClient) GetJSON(ctx context.Context, path string, params interface{}, result interface{}) error {
	body, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

// Post 发送 POST 请求
func (c *HTTPClient) Post(ctx context.Context, path string, data interface{}) ([]byte, error) {
	urlStr := c.BaseURL + path

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = strings.NewReader(string(jsonData))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// PostJSON 发送 POST 请求并解析 JSON
func (c *HTTPClient) PostJSON(ctx context.Context, path string, data interface{}, result interface{}) error {
	body, err := c.Post(ctx, path, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// BuildQuery 从结构体构建查询字符串
func BuildQuery(params interface{}) string {
	if params == nil {
		return ""
	}

	values := url.Values{}
	v := reflect.ValueOf(params)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		tag := fieldType.Tag.Get("url")
		if tag == "" || tag == "-" {
			continue
		}

		parts := strings.Split(tag, ",")
		name := parts[0]
		omitempty := len(parts) > 1 && parts[1] == "omitempty"

		var strVal string
		switch field.Kind() {
		case reflect.String:
			strVal = field.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.Int() != 0 || !omitempty {
				strVal = strconv.FormatInt(field.Int(), 10)
			}
		case reflect.Bool:
			if field.Bool() || !omitempty {
				strVal = strconv.FormatBool(field.Bool())
			}
		case reflect.Float32, reflect.Float64:
			if field.Float() != 0 || !omitempty {
				strVal = strconv.FormatFloat(field.Float(), 'f', -1, 64)
			}
		}

		if strVal != "" {
			values.Set(name, strVal)
		}
	}

	return values.Encode()
}

package server

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"time"

	"xinyuan_tech/entitlement-service/internal/auth"
	"xinyuan_tech/entitlement-service/internal/conf"
	ierrors "xinyuan_tech/entitlement-service/internal/errors"
	"xinyuan_tech/entitlement-service/internal/service"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Bootstrap, ent *service.EntitlementService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			// 从网关注入的 Header 中提取用户身份
			authMiddleware(),
		),
		http.ErrorEncoder(customErrorEncoder),
	}
	if c.Server.Http.Addr != "" {
		opts = append(opts, http.Address(c.Server.Http.Addr))
	}
	if c.Server.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Server.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}
	srv := http.NewServer(opts...)

	// 注册业务路由
	registerRoutes(srv, ent)

	// 注册健康检查端点
	srv.Route("/").GET("/health", func(ctx http.Context) error {
		return ctx.Result(200, map[string]string{
			"status":  "ok",
			"service": "entitlement-service",
		})
	})

	return srv
}

func registerRoutes(srv *http.Server, ent *service.EntitlementService) {
	r := srv.Route("/v1")

	r.GET("/entitlement/quota", handle(ent.GetQuota, func() *service.GetQuotaRequest { return &service.GetQuotaRequest{} }))
	r.POST("/entitlement/reserve", handle(ent.ReserveAction, func() *service.ReserveActionRequest { return &service.ReserveActionRequest{} }))
	r.POST("/entitlement/release", handle(ent.ReleaseAction, func() *service.ReleaseActionRequest { return &service.ReleaseActionRequest{} }))
	r.POST("/entitlement/outcome", handle(ent.RecordOutcome, func() *service.RecordOutcomeRequest { return &service.RecordOutcomeRequest{} }))
	r.GET("/progression", handle(ent.GetProgression, func() *service.GetProgressionRequest { return &service.GetProgressionRequest{} }))
	r.GET("/plans", handle(ent.ListPlans, func() *service.ListPlansRequest { return &service.ListPlansRequest{} }))

	// 功能开关名走路径参数
	r.GET("/entitlement/features/{feature}", func(ctx http.Context) error {
		req := &service.CheckFeatureRequest{Feature: ctx.Vars().Get("feature")}
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return ent.CheckFeature(c, v.(*service.CheckFeatureRequest))
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}

// handle 将 service 方法适配为 kratos 路由处理函数 (经过中间件链)
func handle[Req any, Reply any](fn func(context.Context, *Req) (*Reply, error), newReq func() *Req) http.HandlerFunc {
	return func(ctx http.Context) error {
		req := newReq()
		if ctx.Request().Method != stdhttp.MethodGet {
			if err := ctx.Bind(req); err != nil {
				return err
			}
		}
		h := ctx.Middleware(func(c context.Context, v interface{}) (interface{}, error) {
			return fn(c, v.(*Req))
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

// authMiddleware 从请求 Header 提取网关注入的用户身份
func authMiddleware() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			if tr, ok := transport.FromServerContext(ctx); ok {
				if uid := tr.RequestHeader().Get("X-User-Id"); uid != "" {
					ctx = auth.WithUID(ctx, uid)
				}
			}
			return handler(ctx, req)
		}
	}
}

func customErrorEncoder(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	se := kerrors.FromError(err)
	status := stdhttp.StatusInternalServerError
	response := map[string]interface{}{
		"code":    status,
		"message": "internal server error",
	}

	if se != nil {
		status = mapErrorStatus(int(se.Code))
		response["code"] = se.Code
		response["reason"] = se.Reason
		response["message"] = se.Message
		if len(se.Metadata) > 0 {
			response["metadata"] = se.Metadata
		}
	} else if err != nil {
		response["message"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func mapErrorStatus(code int) int {
	if code >= 100 && code < 600 {
		return code
	}
	switch code {
	case ierrors.ErrCodeQuotaExceeded:
		return stdhttp.StatusTooManyRequests
	case ierrors.ErrCodeQuotaReservationConflict, ierrors.ErrCodeConcurrentUpdateConflict:
		return stdhttp.StatusConflict
	case ierrors.ErrCodeUserNotFound:
		return stdhttp.StatusNotFound
	}
	if code >= 140000 && code < 150000 {
		return stdhttp.StatusBadRequest
	}
	return stdhttp.StatusInternalServerError
}

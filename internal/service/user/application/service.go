package application

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"orderflow/internal/pkg/logger"
	"orderflow/internal/service/user/domain"
)

// UserApplicationService 编排用户的创建与查询。
type UserApplicationService struct {
	userRepo domain.UserRepository
	tracer   trace.Tracer
}

func NewUserApplicationService(userRepo domain.UserRepository, tracer trace.Tracer) *UserApplicationService {
	return &UserApplicationService{userRepo: userRepo, tracer: tracer}
}

func (s *UserApplicationService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.CreateUser")
	defer span.End()

	user, err := domain.NewUser(req.Name, req.Username, req.Password)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist user")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	logger.Ctx(ctx).Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return toUserResponse(user), nil
}

func (s *UserApplicationService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetUser")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", id))

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserApplicationService) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.ListUsers")
	defer span.End()

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	return resp, nil
}

package connect

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsconnect "github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/aws/aws-sdk-go-v2/service/connect/types"
	"github.com/aws/smithy-go"
	smithymiddleware "github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"go.uber.org/zap"

	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
)

// DefaultRegion matches the region used when none is configured.
const DefaultRegion = "us-east-1"

// SessionConfig describes how to open a session with Amazon Connect.
type SessionConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Endpoint overrides the service endpoint (useful for testing).
	Endpoint string
}

// Client implements Service using the AWS SDK.
type Client struct {
	api *awsconnect.Client
}

// NewClient opens a Connect session. Static credentials are used when an
// access key is configured, otherwise the default AWS credential chain applies.
// Each API call is attempted once; retries are left to the caller.
func NewClient(ctx context.Context, cfg SessionConfig) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithRetryMaxAttempts(1),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := awsconnect.NewFromConfig(awsCfg, func(o *awsconnect.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Client{api: api}, nil
}

func (c *Client) ListSecurityProfiles(ctx context.Context, instanceID string, pageSize int32) ([]ProfileSummary, error) {
	p := awsconnect.NewListSecurityProfilesPaginator(c.api,
		&awsconnect.ListSecurityProfilesInput{InstanceId: aws.String(instanceID)},
		func(o *awsconnect.ListSecurityProfilesPaginatorOptions) { o.Limit = pageSize },
	)

	var profiles []ProfileSummary
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classifyError(ctx, "list security profiles", err)
		}
		for _, s := range page.SecurityProfileSummaryList {
			profiles = append(profiles, ProfileSummary{
				ID:   aws.ToString(s.Id),
				Name: aws.ToString(s.Name),
				ARN:  aws.ToString(s.Arn),
			})
		}
	}
	return profiles, nil
}

func (c *Client) ListRoutingProfiles(ctx context.Context, instanceID string, pageSize int32) ([]ProfileSummary, error) {
	p := awsconnect.NewListRoutingProfilesPaginator(c.api,
		&awsconnect.ListRoutingProfilesInput{InstanceId: aws.String(instanceID)},
		func(o *awsconnect.ListRoutingProfilesPaginatorOptions) { o.Limit = pageSize },
	)

	var profiles []ProfileSummary
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classifyError(ctx, "list routing profiles", err)
		}
		for _, s := range page.RoutingProfileSummaryList {
			profiles = append(profiles, ProfileSummary{
				ID:   aws.ToString(s.Id),
				Name: aws.ToString(s.Name),
				ARN:  aws.ToString(s.Arn),
			})
		}
	}
	return profiles, nil
}

func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*CreatedUser, error) {
	input := &awsconnect.CreateUserInput{
		InstanceId:         aws.String(params.InstanceID),
		Username:           aws.String(params.Username),
		Password:           aws.String(params.Password),
		PhoneConfig:        toUserPhoneConfig(params.PhoneConfig),
		IdentityInfo:       toUserIdentityInfo(params.IdentityInfo),
		SecurityProfileIds: params.SecurityProfileIDs,
		RoutingProfileId:   aws.String(params.RoutingProfileID),
	}

	out, err := c.api.CreateUser(ctx, input)
	if err != nil {
		return nil, classifyError(ctx, "create user", err)
	}

	requestID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
	return &CreatedUser{
		UserID:         aws.ToString(out.UserId),
		UserARN:        aws.ToString(out.UserArn),
		RequestID:      requestID,
		HTTPStatusCode: statusFromMetadata(out.ResultMetadata),
	}, nil
}

func toUserPhoneConfig(pc PhoneConfig) *types.UserPhoneConfig {
	out := &types.UserPhoneConfig{
		PhoneType:                 types.PhoneType(pc.PhoneType),
		AutoAccept:                pc.AutoAccept,
		AfterContactWorkTimeLimit: pc.AfterContactWorkTimeLimit,
	}
	if pc.DeskPhoneNumber != "" {
		out.DeskPhoneNumber = aws.String(pc.DeskPhoneNumber)
	}
	return out
}

func toUserIdentityInfo(info *IdentityInfo) *types.UserIdentityInfo {
	if info == nil {
		return nil
	}
	return &types.UserIdentityInfo{
		FirstName:      optionalString(info.FirstName),
		LastName:       optionalString(info.LastName),
		Email:          optionalString(info.Email),
		SecondaryEmail: optionalString(info.SecondaryEmail),
		Mobile:         optionalString(info.Mobile),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func statusFromMetadata(md smithymiddleware.Metadata) int {
	if raw, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && raw != nil {
		return raw.StatusCode
	}
	return http.StatusOK
}

// classifyError maps SDK errors onto UpstreamError. Errors that never reached
// the API (transport, context) are wrapped unchanged.
func classifyError(ctx context.Context, op string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	status := 0
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	kind, cause := kindForCode(err, apiErr.ErrorCode())
	if kind == UpstreamErrorKindThrottled {
		applog.LogWarn(ctx, "connect api throttled",
			zap.String("operation", op),
			zap.String("code", apiErr.ErrorCode()),
			zap.Int("status", status),
		)
	}

	return &UpstreamError{
		Kind:    kind,
		Code:    apiErr.ErrorCode(),
		Message: apiErr.ErrorMessage(),
		Status:  status,
		cause:   cause,
	}
}

func kindForCode(err error, code string) (UpstreamErrorKind, error) {
	// Check for typed Connect errors first
	var dup *types.DuplicateResourceException
	if errors.As(err, &dup) {
		return UpstreamErrorKindDuplicate, ErrDuplicateUser
	}
	var nf *types.ResourceNotFoundException
	if errors.As(err, &nf) {
		return UpstreamErrorKindNotFound, ErrNotFound
	}

	switch code {
	case "DuplicateResourceException":
		return UpstreamErrorKindDuplicate, ErrDuplicateUser
	case "ResourceNotFoundException":
		return UpstreamErrorKindNotFound, ErrNotFound
	case "InvalidParameterException", "InvalidRequestException", "ValidationException":
		return UpstreamErrorKindInvalid, ErrInvalidRequest
	case "AccessDeniedException", "UnauthorizedException", "UnrecognizedClientException",
		"InvalidSignatureException", "ExpiredTokenException":
		return UpstreamErrorKindForbidden, ErrForbidden
	case "ThrottlingException", "TooManyRequestsException", "LimitExceededException":
		return UpstreamErrorKindThrottled, ErrThrottled
	default:
		return UpstreamErrorKindUpstream, ErrUpstream
	}
}

// Compile-time interface check
var _ Service = (*Client)(nil)

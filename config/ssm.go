package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM reads every parameter below SSM_PARAMETER_PATH and merges it into
// config. Parameter names are reduced to their last path segment, so
// /portfolio/prod/DATABASE_URL becomes DATABASE_URL. Values already present
// in the environment win.
func LoadSSM(ctx context.Context, cfg map[string]string) (map[string]string, error) {
	parameterPath := GetString(cfg, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return cfg, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region := GetString(cfg, "AWS_REGION", ""); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("load aws config: %w", err)
	}

	params, err := FetchParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath)
	if err != nil {
		return cfg, err
	}

	log.Info().Str("path", parameterPath).Int("count", len(params)).Msg("Loaded parameters from SSM")
	return Merge(cfg, params), nil
}

// FetchParameters pages through all decrypted parameters under parameterPath.
func FetchParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string) (map[string]string, error) {
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get parameters by path %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			key := path.Base(strings.TrimSuffix(name, "/"))
			if key == "" || key == "." || key == "/" {
				continue
			}
			params[key] = aws.ToString(p.Value)
		}
	}

	return params, nil
}

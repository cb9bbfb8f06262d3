package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type PostboardStackProps struct {
	awscdk.StackProps
	// 投稿の保存先 ("http" なら外部API、"s3" ならバケット)
	Backend string
	// 外部APIのベースURL (空なら既定値)
	Endpoint string
}

func NewPostboardStack(scope constructs.Construct, id string, props *PostboardStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	backend := "http"
	endpoint := ""
	if props != nil {
		sprops = props.StackProps
		if props.Backend != "" {
			backend = props.Backend
		}
		endpoint = props.Endpoint
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	// S3: 投稿格納用 (s3バックエンド時)
	bucket := awss3.NewBucket(stack, jsii.String("BoardPosts"), &awss3.BucketProps{})

	env := map[string]*string{
		"POSTS_BACKEND": jsii.String(backend),
		"POSTS_BUCKET":  bucket.BucketName(),
	}
	if endpoint != "" {
		env["POSTS_ENDPOINT"] = jsii.String(endpoint)
	}

	// Lambda: 事前にビルドしたZIPアセットを使用
	fn := awslambda.NewFunction(stack, jsii.String("BoardApi"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2(),
		Handler:     jsii.String("bootstrap"),
		Code:        awslambda.Code_FromAsset(jsii.String("dist/lambda/board.zip"), nil),
		Environment: &env,
	})
	bucket.GrantReadWrite(fn, nil)

	// API Gateway: ページ表示とフォーム送信をすべてLambdaへ
	awsapigateway.NewLambdaRestApi(stack, jsii.String("BoardApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler:          fn,
		RestApiName:      jsii.String("postboard"),
		BinaryMediaTypes: jsii.Strings("application/x-www-form-urlencoded"),
	})

	return stack
}

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	NewPostboardStack(app, "PostboardStack", &PostboardStackProps{
		StackProps: awscdk.StackProps{
			Env: env(),
		},
		Backend: "http",
	})

	app.Synth(nil)
}

// スタックのデプロイ先 (nil なら環境非依存)
func env() *awscdk.Environment {
	return nil
}

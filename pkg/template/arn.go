package template

import "strings"

// FirehoseARN builds the ARN of a Kinesis Firehose delivery stream. Delivery streams have no
// `Arn` attribute, so it has to be assembled from the account and region.
func FirehoseARN(streamName string) Join {
	return Concat("arn:aws:firehose:", Region, ":", AccountID, ":deliverystream/"+streamName)
}

// ExecuteAPIWildcardARN matches every stage, method and path of every API in the account.
func ExecuteAPIWildcardARN() Join {
	return Concat("arn:aws:execute-api:", Region, ":", AccountID, ":*/*/*/*")
}

// IoTTopicARN builds the ARN of an IoT topic (or topic pattern) in the current account.
func IoTTopicARN(topic string) Join {
	return Concat("arn:aws:iot:", Region, ":", AccountID, ":topic/"+topic)
}

// StatesExecutionRoleARN is the role the AWS console creates the first time a state machine is
// created in a region. It is referenced, never created.
func StatesExecutionRoleARN() Join {
	return Concat("arn:aws:iam::", AccountID, ":role/service-role/StatesExecutionRole-", Region)
}

// NormalizeName turns a function name into the form the Serverless Framework uses inside logical
// ids.
func NormalizeName(name string) string {
	normalized := strings.ReplaceAll(name, "-", "Dash")
	normalized = strings.ReplaceAll(normalized, "_", "Underscore")
	if normalized != "" {
		normalized = strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

// FunctionLogicalID is the logical id the Serverless Framework gives the Lambda function it
// generates for the function named `name`.
func FunctionLogicalID(name string) string {
	return NormalizeName(name) + "LambdaFunction"
}

package onprem

type Options struct {
	S3URI       string
	PrettyPrint bool
	SkipWait    bool
	AWSDebug    bool
}

func NewOptions(s3URI string, prettyPrint bool, skipWait bool) Options {
	return Options{
		S3URI:       s3URI,
		PrettyPrint: prettyPrint,
		SkipWait:    skipWait,
	}
}

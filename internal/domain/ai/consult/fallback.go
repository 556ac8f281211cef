package consult

import (
	"fmt"
	"strings"
)

type services struct {
	aws []string
	gcp []string
}

var workloadServices = map[string]services{
	"web-apps":        {aws: []string{"Elastic Beanstalk", "CloudFront", "Amazon RDS"}, gcp: []string{"Cloud Run", "Cloud CDN", "Cloud SQL"}},
	"databases":       {aws: []string{"Amazon Aurora", "Amazon Redshift", "DynamoDB"}, gcp: []string{"Cloud SQL", "BigQuery", "Firestore"}},
	"ai-ml":           {aws: []string{"Amazon SageMaker", "Amazon Bedrock"}, gcp: []string{"Vertex AI", "Gemini API"}},
	"devops":          {aws: []string{"CodePipeline", "CodeBuild", "Amazon ECR"}, gcp: []string{"Cloud Build", "Cloud Deploy", "Artifact Registry"}},
	"mobile-backends": {aws: []string{"AWS Amplify", "API Gateway", "AWS Lambda"}, gcp: []string{"Firebase", "Cloud Functions", "API Gateway"}},
	"analytics":       {aws: []string{"Amazon Athena", "Amazon Kinesis", "QuickSight"}, gcp: []string{"BigQuery", "Dataflow", "Looker Studio"}},
	"iot":             {aws: []string{"AWS IoT Core", "AWS IoT Greengrass"}, gcp: []string{"Pub/Sub", "Dataflow", "Google Distributed Cloud Edge"}},
	"other":           {aws: []string{"Amazon EC2", "Amazon S3"}, gcp: []string{"Compute Engine", "Cloud Storage"}},
}

var labels = map[string]string{
	"cost-savings":        "cost savings",
	"scalability":         "scalability and performance",
	"security":            "security and compliance",
	"innovation":          "innovation with AI/ML and analytics",
	"reliability":         "reliability and uptime",
	"flexibility":         "flexibility and agility",
	"lower-cost":          "lower cost",
	"faster-deployment":   "faster deployment",
	"ai-analytics":        "advanced AI and analytics tooling",
	"security-compliance": "stronger security and compliance",
	"multi-cloud":         "multi-cloud flexibility",
	"support":             "24/7 support",
	"integration":         "easy integration with existing systems",
	"performance":         "high performance and low latency",
}

var nextSteps = []string{
	"Schedule a free cloud readiness assessment with our architects",
	"Inventory current workloads, data volumes and compliance constraints",
	"Run a proof of concept on the shortlisted provider",
	"Agree on a phased migration plan with cost guardrails",
	"Set up monitoring, backups and security baselines before go-live",
}

// Fallback builds a deterministic answer from the selections alone.
func Fallback(req Request) Response {
	a := req.Answers

	var aws, gcp []string
	for _, w := range a.WorkloadType {
		svc, ok := workloadServices[strings.ToLower(w)]
		if !ok {
			svc = workloadServices["other"]
		}
		aws = appendUnique(aws, svc.aws...)
		gcp = appendUnique(gcp, svc.gcp...)
	}

	rec := fmt.Sprintf("Your priorities are %s, and you value %s most when choosing a provider. "+
		"A managed, pay-as-you-go architecture on either AWS or Google Cloud fits these workloads; "+
		"we suggest starting with the services below and validating them with a short proof of concept.",
		joinLabels(a.PrimaryGoal), joinLabels(a.ImportantFactor))
	if a.CustomQuestion != "" {
		rec += " Our consultants will follow up on your question: \"" + a.CustomQuestion + "\"."
	}

	return Response{
		Recommendation: rec,
		AWSSolution:    "On AWS: " + strings.Join(aws, ", ") + ".",
		GCPSolution:    "On Google Cloud: " + strings.Join(gcp, ", ") + ".",
		NextSteps:      append([]string(nil), nextSteps...),
	}
}

func joinLabels(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if l, ok := labels[strings.ToLower(v)]; ok {
			v = l
		}
		out = appendUnique(out, v)
	}
	switch len(out) {
	case 0:
		return "not specified"
	case 1:
		return out[0]
	default:
		return strings.Join(out[:len(out)-1], ", ") + " and " + out[len(out)-1]
	}
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

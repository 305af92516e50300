package util

func GetAppName() string {
	return "peticoes-api"
}

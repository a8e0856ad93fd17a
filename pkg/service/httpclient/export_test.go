package httpclient

var Truncate = truncate

package logger

import "go.uber.org/zap"

func UserID(v string) zap.Field    { return zap.String("user_id", v) }
func Namespace(v string) zap.Field { return zap.String("namespace", v) }
func Login(v string) zap.Field     { return zap.String("login", v) }
func Title(v string) zap.Field     { return zap.String("title", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Code(v string) zap.Field      { return zap.String("code", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

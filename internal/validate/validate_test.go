package validate

import (
	"testing"
)

func TestArgument(t *testing.T) {
	type args struct {
		name  string
		value string
		regex string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "valid model id",
			args: args{
				name:  "modelId",
				value: "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
				regex: ModelIDRegex,
			},
			wantErr: false,
		},
		{
			name: "too short",
			args: args{
				name:  "modelId",
				value: "3f2504e0",
				regex: ModelIDRegex,
			},
			wantErr: true,
		},
		{
			name: "uppercase not allowed",
			args: args{
				name:  "modelId",
				value: "3F2504E0-4F89-41D3-9A0C-0305E82C3301",
				regex: ModelIDRegex,
			},
			wantErr: true,
		},
		{
			name: "empty",
			args: args{
				name:  "modelId",
				value: "",
				regex: ModelIDRegex,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Argument(tt.args.name, tt.args.value, tt.args.regex)
			if (err != nil) != tt.wantErr {
				t.Errorf("Argument() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "present", value: "something", wantErr: false},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotEmpty(tt.name, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NotEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
